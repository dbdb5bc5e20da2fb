package imgproc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func TestSelectKeys_OnlyDirectoryMarkers(t *testing.T) {
	listing := []RemoteObject{
		{Key: "uploads/", LastModified: at(100)},
		{Key: "uploads/folder/", LastModified: at(200)},
	}

	assert.Empty(t, SelectKeys(listing, PolicyAll))
	assert.Empty(t, SelectKeys(listing, PolicyLatest))
}

func TestSelectKeys_EmptyListing(t *testing.T) {
	assert.Empty(t, SelectKeys(nil, PolicyAll))
	assert.Empty(t, SelectKeys(nil, PolicyLatest))
}

func TestSelectKeys_AllExcludesMarkersInOrder(t *testing.T) {
	listing := []RemoteObject{
		{Key: "uploads/z.png", LastModified: at(300)},
		{Key: "uploads/folder/", LastModified: at(100)},
		{Key: "uploads/a.png", LastModified: at(200)},
	}

	got := SelectKeys(listing, PolicyAll)

	assert.Equal(t, []string{"uploads/z.png", "uploads/a.png"}, got)
}

func TestSelectKeys_LatestPicksMaxTimestamp(t *testing.T) {
	listing := []RemoteObject{
		{Key: "uploads/a.png", LastModified: at(100)},
		{Key: "uploads/c.png", LastModified: at(300)},
		{Key: "uploads/b.png", LastModified: at(200)},
	}

	assert.Equal(t, []string{"uploads/c.png"}, SelectKeys(listing, PolicyLatest))
}

func TestSelectKeys_LatestTieKeepsFirstSeen(t *testing.T) {
	listing := []RemoteObject{
		{Key: "uploads/a.png", LastModified: at(100)},
		{Key: "uploads/first.png", LastModified: at(500)},
		{Key: "uploads/second.png", LastModified: at(500)},
	}

	assert.Equal(t, []string{"uploads/first.png"}, SelectKeys(listing, PolicyLatest))
}

func TestSelectKeys_LatestIgnoresNewerMarker(t *testing.T) {
	listing := []RemoteObject{
		{Key: "uploads/a.png", LastModified: at(100)},
		{Key: "uploads/new-folder/", LastModified: at(900)},
	}

	assert.Equal(t, []string{"uploads/a.png"}, SelectKeys(listing, PolicyLatest))
}

func TestSelectKeys_LatestAcceptsZeroTimestamp(t *testing.T) {
	listing := []RemoteObject{{Key: "uploads/a.png"}}

	assert.Equal(t, []string{"uploads/a.png"}, SelectKeys(listing, PolicyLatest))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("latest")
	require.NoError(t, err)
	assert.Equal(t, PolicyLatest, p)

	p, err = ParsePolicy(" ALL ")
	require.NoError(t, err)
	assert.Equal(t, PolicyAll, p)

	_, err = ParsePolicy("newest")
	assert.Error(t, err)

	assert.Equal(t, "latest", PolicyLatest.String())
	assert.Equal(t, "all", PolicyAll.String())
}

func TestKeyFilter(t *testing.T) {
	listing := []RemoteObject{
		{Key: "uploads/a.png"},
		{Key: "uploads/b.txt"},
		{Key: "uploads/sub/c.jpg"},
	}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "empty pattern matches all", pattern: "", want: []string{"uploads/a.png", "uploads/b.txt", "uploads/sub/c.jpg"}},
		{name: "single star stays in folder", pattern: "*.{png,jpg}", want: []string{"uploads/a.png"}},
		{name: "double star crosses folders", pattern: "**.{png,jpg}", want: []string{"uploads/a.png", "uploads/sub/c.jpg"}},
		{name: "subfolder only", pattern: "sub/*", want: []string{"uploads/sub/c.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewKeyFilter(tt.pattern, "uploads/")
			require.NoError(t, err)

			got := SelectKeys(f.Apply(listing), PolicyAll)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.pattern, f.String())
		})
	}
}

func TestKeyFilter_InvalidPattern(t *testing.T) {
	_, err := NewKeyFilter("[", "uploads/")
	assert.Error(t, err)
}

func TestKeyFilter_NilMatchesEverything(t *testing.T) {
	var f *KeyFilter
	assert.True(t, f.Match("anything"))
}
