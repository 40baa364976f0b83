package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_PlainStructs(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&AddMembersRequest{ProjectID: "p1", Users: []string{"u2"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"projectId":"p1","users":["u2"]}`, string(b))

	var got AddMembersRequest
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "p1", got.ProjectID)
}

func TestCodec_ProtoMessagesUseProtojson(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"SERVING"`)

	var got healthpb.HealthCheckResponse
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, got.GetStatus())
}
