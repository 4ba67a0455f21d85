package aws

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
)

// DescribeImagesArgs are the arguments of ec2 describe-images.
type DescribeImagesArgs struct {
	AMI       string
	Owner     string
	NameMatch string
}

// DescribeImages lists AMIs, newest first. Without an AMI or owner the
// profile's describe_images_owners is used, falling back to the caller's own
// images.
func DescribeImages(ctx context.Context, profile config.Profile, args DescribeImagesArgs) (render.Result, error) {
	settings, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	input := &ListImagesInput{}

	switch {
	case args.AMI != "":
		input.ImageIDs = []string{args.AMI}
	case args.Owner != "":
		input.Owners = []string{args.Owner}
	case len(settings.DescribeImagesOwners) > 0:
		input.Owners = settings.DescribeImagesOwners
	default:
		input.Owners = []string{"self"}
	}

	if args.AMI == "" {
		input.NameMatch = firstNonEmpty(args.NameMatch, settings.DescribeImagesNameMatch)
	}

	images, err := client.ListImages(ctx, input)
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(images))
	for _, img := range images {
		row := render.NewRow("Name", img.Name, "ImageId", img.ID, "State", img.State)
		if img.CreationDate.IsZero() {
			row.Set("CreationDate", nil)
		} else {
			row.Set("CreationDate", img.CreationDate)
		}
		row.Set("SnapshotId", img.SnapshotID)
		rows = append(rows, row)
	}

	return render.NewTable(rows), nil
}

// ImageArgs identify an AMI.
type ImageArgs struct {
	AMI string
}

// DeleteImage deregisters an AMI and deletes its snapshot.
func DeleteImage(ctx context.Context, profile config.Profile, args ImageArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	image, err := client.DeleteImage(ctx, args.AMI)
	if err != nil {
		return render.Result{}, err
	}

	return render.NewObject(render.NewRow("ImageId", image.ID, "SnapshotId", image.SnapshotID)), nil
}

// ShareImageArgs are the arguments of ec2 share-image.
type ShareImageArgs struct {
	AMI     string
	Account string
}

// ShareImage lets another account launch an AMI.
func ShareImage(ctx context.Context, profile config.Profile, args ShareImageArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	if err := client.ShareImage(ctx, args.AMI, args.Account); err != nil {
		return render.Result{}, err
	}

	return render.None(), nil
}

// KeyPairArgs are the arguments of ec2 create-key-pair.
type KeyPairArgs struct {
	Name string
	File string
}

// CreateKeyPair creates a key pair and saves its private key to File, which
// must not exist yet.
func CreateKeyPair(ctx context.Context, profile config.Profile, args KeyPairArgs) (render.Result, error) {
	if args.File == "" {
		return render.Result{}, errors.New("key file is required")
	}

	path, err := config.ExpandPath(args.File)
	if err != nil {
		return render.Result{}, err
	}

	if _, err := os.Stat(path); err == nil {
		return render.Result{}, fmt.Errorf("key file %s already exists", path)
	}

	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	// The private key is only returned once, so the file has to be writable
	// before the key pair exists in AWS.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return render.Result{}, fmt.Errorf("failed to create key file: %w", err)
	}

	kp, err := client.CreateKeyPair(ctx, args.Name)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return render.Result{}, err
	}

	if _, err := f.WriteString(kp.Material); err != nil {
		_ = f.Close()
		return render.Result{}, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return render.Result{}, fmt.Errorf("failed to write key file: %w", err)
	}

	return render.NewObject(render.NewRow(
		"KeyName", kp.Name,
		"KeyPairId", kp.ID,
		"KeyFingerprint", kp.Fingerprint,
		"File", path,
	)), nil
}
