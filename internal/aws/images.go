package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// ListImagesInput contains parameters for listing AMIs
type ListImagesInput struct {
	ImageIDs  []string
	Owners    []string
	NameMatch string
}

// ListImages returns AMIs matching input, newest first
func (c *Client) ListImages(ctx context.Context, input *ListImagesInput) ([]pkgtypes.Image, error) {
	if input == nil {
		input = &ListImagesInput{}
	}

	params := &ec2.DescribeImagesInput{
		ImageIds: input.ImageIDs,
		Owners:   input.Owners,
	}

	if input.NameMatch != "" {
		params.Filters = []ec2types.Filter{
			{
				Name:   aws.String("name"),
				Values: []string{"*" + input.NameMatch + "*"},
			},
		}
	}

	var images []pkgtypes.Image

	paginator := ec2.NewDescribeImagesPaginator(c.EC2, params)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe images: %w", err)
		}

		for _, img := range page.Images {
			images = append(images, toImage(img))
		}
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].CreationDate.After(images[j].CreationDate)
	})

	return images, nil
}

// DescribeImage returns a single AMI, or nil if it does not exist
func (c *Client) DescribeImage(ctx context.Context, imageID string) (*pkgtypes.Image, error) {
	output, err := c.EC2.DescribeImages(ctx, &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe image %s: %w", imageID, err)
	}

	if len(output.Images) == 0 {
		return nil, nil
	}

	image := toImage(output.Images[0])
	return &image, nil
}

// DeleteImage deregisters an AMI and deletes the snapshot backing it
func (c *Client) DeleteImage(ctx context.Context, imageID string) (*pkgtypes.Image, error) {
	image, err := c.DescribeImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("image %s not found", imageID)
	}

	if _, err := c.EC2.DeregisterImage(ctx, &ec2.DeregisterImageInput{
		ImageId: aws.String(imageID),
	}); err != nil {
		return nil, fmt.Errorf("failed to deregister image %s: %w", imageID, err)
	}

	if image.SnapshotID != "" {
		if _, err := c.EC2.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
			SnapshotId: aws.String(image.SnapshotID),
		}); err != nil {
			return nil, fmt.Errorf("failed to delete snapshot %s: %w", image.SnapshotID, err)
		}
	}

	return image, nil
}

// ShareImage grants another account permission to launch an AMI
func (c *Client) ShareImage(ctx context.Context, imageID, accountID string) error {
	_, err := c.EC2.ModifyImageAttribute(ctx, &ec2.ModifyImageAttributeInput{
		ImageId: aws.String(imageID),
		LaunchPermission: &ec2types.LaunchPermissionModifications{
			Add: []ec2types.LaunchPermission{{UserId: aws.String(accountID)}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to share image %s: %w", imageID, err)
	}
	return nil
}

// CreateKeyPair creates an RSA key pair and returns it with its private key
func (c *Client) CreateKeyPair(ctx context.Context, name string) (*pkgtypes.KeyPair, error) {
	output, err := c.EC2.CreateKeyPair(ctx, &ec2.CreateKeyPairInput{
		KeyName:   aws.String(name),
		KeyFormat: ec2types.KeyFormatPem,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create key pair %s: %w", name, err)
	}

	return &pkgtypes.KeyPair{
		Name:        deref(output.KeyName),
		ID:          deref(output.KeyPairId),
		Fingerprint: deref(output.KeyFingerprint),
		Material:    deref(output.KeyMaterial),
	}, nil
}

// toImage converts an EC2 Image to our Image type
func toImage(i ec2types.Image) pkgtypes.Image {
	image := pkgtypes.Image{
		ID:             deref(i.ImageId),
		Name:           deref(i.Name),
		State:          string(i.State),
		OwnerID:        deref(i.OwnerId),
		RootDeviceName: deref(i.RootDeviceName),
		Public:         derefBool(i.Public),
	}

	// CreationDate is ISO 8601; fractional seconds are accepted by RFC3339 parsing
	if t, err := time.Parse(time.RFC3339, deref(i.CreationDate)); err == nil {
		image.CreationDate = t
	}

	for _, bdm := range i.BlockDeviceMappings {
		if bdm.Ebs == nil || deref(bdm.DeviceName) != image.RootDeviceName {
			continue
		}
		image.SnapshotID = deref(bdm.Ebs.SnapshotId)
	}

	return image
}
