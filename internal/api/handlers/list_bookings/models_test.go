package list_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(url.Values{"from": {"2024-06-01"}, "estimatorId": {"4"}})
	require.NoError(t, err)
	require.NotNil(t, req.From)
	assert.Equal(t, "2024-06-01", *req.From)
	assert.Nil(t, req.To)
	require.NotNil(t, req.EstimatorID)
	assert.Equal(t, int64(4), *req.EstimatorID)

	req, err = ToServiceRequest(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.From)
	assert.Nil(t, req.EstimatorID)

	_, err = ToServiceRequest(url.Values{"estimatorId": {"x"}})
	assert.Error(t, err)
	_, err = ToServiceRequest(url.Values{"estimatorId": {"-2"}})
	assert.Error(t, err)
}
