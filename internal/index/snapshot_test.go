package index

import (
	"testing"
	"time"

	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/stretchr/testify/require"
)

// TestSnapshot_ByID_FirstMatch — при дубликатах id возвращается первая запись.
func TestSnapshot_ByID_FirstMatch(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]models.Tender{
		{ID: 5, Title: "first"},
		{ID: 6, Title: "other"},
		{ID: 5, Title: "second"},
	}, BuildInfo{})

	got, ok := snap.ByID(5)
	require.True(t, ok)
	require.Equal(t, "first", got.Title)
	require.Equal(t, 3, snap.Len())

	_, ok = snap.ByID(404)
	require.False(t, ok)
}

// TestNewSnapshot_CopiesInput — снапшот не меняется вслед за исходным срезом.
func TestNewSnapshot_CopiesInput(t *testing.T) {
	t.Parallel()

	src := []models.Tender{{ID: 1, Title: "a", Suppliers: []models.Supplier{{ID: 1, Name: "x"}}}}
	failed := []int{3}
	snap := NewSnapshot(src, BuildInfo{FailedPages: failed})

	src[0].Title = "changed"
	src[0].Suppliers[0].Name = "changed"
	failed[0] = 99

	got, _ := snap.ByID(1)
	require.Equal(t, "a", got.Title)
	require.Equal(t, "x", got.Suppliers[0].Name)
	require.Equal(t, []int{3}, snap.Info().FailedPages)
}

// TestBuildInfo_Degraded — деградация определяется упавшими страницами.
func TestBuildInfo_Degraded(t *testing.T) {
	t.Parallel()

	require.False(t, BuildInfo{BuiltAt: time.Now()}.Degraded())
	require.True(t, BuildInfo{FailedPages: []int{7}}.Degraded())

	snap := NewSnapshot(nil, BuildInfo{BuildID: "b", Source: SourceDisk, FailedPages: []int{1}})
	info := snap.Info()
	info.FailedPages[0] = 42
	require.Equal(t, []int{1}, snap.Info().FailedPages)
	require.Equal(t, SourceDisk, snap.Info().Source)
}
