package database

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/config"
)

func TestConnectDynamoDB_UsesConfiguredEndpoint(t *testing.T) {
	client, err := ConnectDynamoDB(context.Background(), config.Config{
		AWSRegion:          "me-south-1",
		AWSAccessKeyID:     "local",
		AWSSecretAccessKey: "local",
		DynamoDBEndpoint:   "http://localhost:8000",
	})
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "me-south-1", opts.Region)
	assert.Equal(t, "http://localhost:8000", aws.ToString(opts.BaseEndpoint))
}

func TestConnectPostgres_RejectsBadURL(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "postgres://%zz")
	assert.Error(t, err)
}
