package aws

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// ErrSharedProfileNotFound is returned when aws_profile names a profile that
// is in neither ~/.aws/config nor ~/.aws/credentials.
var ErrSharedProfileNotFound = errors.New("aws profile not found")

// SharedProfile looks up name in the AWS shared config files. AWS_CONFIG_FILE
// and AWS_SHARED_CREDENTIALS_FILE override the default locations.
func SharedProfile(ctx context.Context, name string) (*pkgtypes.AWSProfile, error) {
	configFiles, credentialsFiles := sharedFiles()

	shared, err := config.LoadSharedConfigProfile(ctx, name, func(o *config.LoadSharedConfigOptions) {
		o.ConfigFiles = configFiles
		o.CredentialsFiles = credentialsFiles
	})
	if err != nil {
		var notExist config.SharedConfigProfileNotExistError
		if errors.As(err, &notExist) {
			return nil, fmt.Errorf("%w: %s", ErrSharedProfileNotFound, name)
		}
		return nil, fmt.Errorf("failed to read aws profile %s: %w", name, err)
	}

	profile := &pkgtypes.AWSProfile{
		Name:   name,
		Region: shared.Region,
	}

	switch {
	case shared.SSOSessionName != "" || shared.SSOStartURL != "":
		profile.Source = "sso"
	case shared.RoleARN != "":
		profile.Source = "assume-role"
	case shared.Credentials.HasKeys():
		profile.Source = "static"
	}

	return profile, nil
}

func sharedFiles() (configFiles, credentialsFiles []string) {
	configFiles = config.DefaultSharedConfigFiles
	if f := os.Getenv("AWS_CONFIG_FILE"); f != "" {
		configFiles = []string{f}
	}

	credentialsFiles = config.DefaultSharedCredentialsFiles
	if f := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); f != "" {
		credentialsFiles = []string{f}
	}

	return configFiles, credentialsFiles
}
