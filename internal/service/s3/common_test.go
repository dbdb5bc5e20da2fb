package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3Url(t *testing.T) {
	tests := []struct {
		in         string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{in: "s3://s3-upload/uploads/", wantBucket: "s3-upload", wantPrefix: "uploads/"},
		{in: "s3://s3-upload/uploads", wantBucket: "s3-upload", wantPrefix: "uploads/"},
		{in: "s3://s3-upload", wantBucket: "s3-upload", wantPrefix: ""},
		{in: "s3://s3-upload/a/b", wantBucket: "s3-upload", wantPrefix: "a/b/"},
		{in: "https://s3-upload/uploads/", wantErr: true},
		{in: "s3:///uploads/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, prefix, err := ParseS3Url(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}
