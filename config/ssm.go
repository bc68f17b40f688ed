package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// LoadSSM pulls every parameter under parameterPath from AWS Systems Manager
// Parameter Store and fills the keys that the environment left unset. The key
// is the last path segment, so /projects/prod/JWT_SECRET becomes JWT_SECRET.
func LoadSSM(ctx context.Context, c map[string]string, parameterPath string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	return overlaySSM(ctx, ssm.NewFromConfig(awsCfg), c, parameterPath)
}

func overlaySSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, c map[string]string, parameterPath string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("read ssm parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			key := path.Base(aws.ToString(p.Name))
			if existing, ok := c[key]; ok && existing != "" {
				continue
			}
			c[key] = aws.ToString(p.Value)
		}
	}
	return nil
}
