package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haikalvidya/lmnr/pkg/validator"
)

func bindBucketsQuery(t *testing.T, rawQuery string) (BucketsRequest, error) {
	t.Helper()
	validator.Init()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/scores/buckets?"+rawQuery, nil)

	var req BucketsRequest
	err := c.ShouldBindQuery(&req)
	return req, err
}

func TestBucketsRequestBindsZeroUpperBound(t *testing.T) {
	req, err := bindBucketsQuery(t, "name=loss&lower_bound=-5&upper_bound=0&bucket_count=5")
	require.NoError(t, err)

	require.NotNil(t, req.UpperBound)
	assert.Equal(t, 0.0, *req.UpperBound)
	assert.Equal(t, -5.0, req.LowerBound)
	assert.Equal(t, 5, req.BucketCount)
}

func TestBucketsRequestRequiresUpperBound(t *testing.T) {
	_, err := bindBucketsQuery(t, "name=loss&bucket_count=5")
	assert.Error(t, err)
}

func TestBucketsRequestDefaultsBucketCount(t *testing.T) {
	req, err := bindBucketsQuery(t, "name=loss&upper_bound=10")
	require.NoError(t, err)
	assert.Equal(t, 10, req.BucketCount)
}

func TestBucketsRequestRejectsUnsafeMetricName(t *testing.T) {
	_, err := bindBucketsQuery(t, "name=a--b&upper_bound=10")
	assert.Error(t, err)
}
