package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/rs/zerolog/log"
)

// SecretsManagerAPI is the subset of the Secrets Manager client AWSStore uses.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSStore reads one Secrets Manager secret. The secret string is either the
// value itself or a JSON object keyed by secret name.
type AWSStore struct {
	client   SecretsManagerAPI
	secretID string
}

// AWSOptions configures NewAWSStore. Static credentials are optional; without
// them the default credential chain applies.
type AWSOptions struct {
	SecretID        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

func NewAWSStore(ctx context.Context, opts AWSOptions) (*AWSStore, error) {
	if strings.TrimSpace(opts.SecretID) == "" {
		return nil, fmt.Errorf("aws secret id is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewAWSStoreWithClient(secretsmanager.NewFromConfig(awsCfg), opts.SecretID), nil
}

func NewAWSStoreWithClient(client SecretsManagerAPI, secretID string) *AWSStore {
	return &AWSStore{client: client, secretID: secretID}
}

func (s *AWSStore) Lookup(ctx context.Context, key string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrNotFound
	}

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretID),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", ErrNotFound
		}
		log.Ctx(ctx).Error().
			Err(err).
			Str("secret_id", s.secretID).
			Msg("Failed to read secret from AWS Secrets Manager")
		return "", fmt.Errorf("get secret value: %w", err)
	}

	secret := strings.TrimSpace(aws.ToString(out.SecretString))
	if secret == "" {
		return "", ErrNotFound
	}

	if strings.HasPrefix(secret, "{") {
		var values map[string]string
		if err := json.Unmarshal([]byte(secret), &values); err != nil {
			return "", fmt.Errorf("decode secret %s: %w", s.secretID, err)
		}
		value, ok := values[key]
		if !ok || strings.TrimSpace(value) == "" {
			return "", ErrNotFound
		}
		return value, nil
	}

	return secret, nil
}
