package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) Lookup(ctx context.Context, key string) (string, error) {
	if value, ok := m[key]; ok {
		return value, nil
	}
	return "", ErrNotFound
}

type failingStore struct{ err error }

func (f failingStore) Lookup(ctx context.Context, key string) (string, error) {
	return "", f.err
}

type fakeSecretsManager struct {
	secret *string
	err    error
	asked  string
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = aws.ToString(params.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.secret}, nil
}

func writeSecrets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestFileStore_Lookup(t *testing.T) {
	path := writeSecrets(t, "GROQ_API_KEY = \"gsk-from-file\"\nPORT = 8080\n")
	store := NewFileStore(path)

	value, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "gsk-from-file", value)

	_, err = store.Lookup(context.Background(), "OTHER_KEY")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Lookup(context.Background(), "PORT")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.toml"))

	_, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_InvalidTOML(t *testing.T) {
	store := NewFileStore(writeSecrets(t, "GROQ_API_KEY = "))

	_, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestChain_Lookup(t *testing.T) {
	chain := Chain{
		mapStore{},
		nil,
		mapStore{"GROQ_API_KEY": "second"},
		mapStore{"GROQ_API_KEY": "third"},
	}

	value, err := chain.Lookup(context.Background(), "GROQ_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	_, err = chain.Lookup(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChain_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	chain := Chain{failingStore{err: boom}, mapStore{"GROQ_API_KEY": "unreached"}}

	_, err := chain.Lookup(context.Background(), "GROQ_API_KEY")
	assert.ErrorIs(t, err, boom)
}

func TestAWSStore_PlainSecret(t *testing.T) {
	fake := &fakeSecretsManager{secret: aws.String("gsk-plain")}
	store := NewAWSStoreWithClient(fake, "prod/themegradient")

	value, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "gsk-plain", value)
	assert.Equal(t, "prod/themegradient", fake.asked)
}

func TestAWSStore_JSONSecret(t *testing.T) {
	fake := &fakeSecretsManager{secret: aws.String(`{"GROQ_API_KEY":"gsk-json","OTHER":"x"}`)}
	store := NewAWSStoreWithClient(fake, "prod/themegradient")

	value, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "gsk-json", value)

	_, err = store.Lookup(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAWSStore_ResourceNotFound(t *testing.T) {
	fake := &fakeSecretsManager{err: &types.ResourceNotFoundException{Message: aws.String("no such secret")}}
	store := NewAWSStoreWithClient(fake, "missing")

	_, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAWSStore_OtherError(t *testing.T) {
	boom := errors.New("access denied")
	store := NewAWSStoreWithClient(&fakeSecretsManager{err: boom}, "prod")

	_, err := store.Lookup(context.Background(), "GROQ_API_KEY")
	assert.ErrorIs(t, err, boom)
}
