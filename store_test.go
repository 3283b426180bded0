package res1d

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "events.res1d.json")

	original := extremeTestFile([]float64{10, 7, 3}, []float64{1, 2, 3})
	if err := original.SaveTo(NewFileResultStore(), path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadResultData(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.ResultType != LTSEvents {
		t.Errorf("result type: got %s, want %s", loaded.ResultType, LTSEvents)
	}
	if len(loaded.TimesList) != 3 {
		t.Errorf("times list: got %d steps, want 3", len(loaded.TimesList))
	}
	assertFloats(t, readColumn(t, loaded, "WaterLevelMaximum"), []float64{10, 7, 3}, "values")
	if loaded.Connection.FilePath != path {
		t.Errorf("connection path: got %s, want %s", loaded.Connection.FilePath, path)
	}
	if loaded.ID == nil {
		t.Error("loaded result should carry an id")
	}
}

func TestMergeFilesEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	pathA := filepath.Join(tmpDir, "a.res1d.json")
	pathB := filepath.Join(tmpDir, "b.res1d.json")
	pathMerged := filepath.Join(tmpDir, "merged.res1d.json")

	store := NewFileResultStore()
	if err := extremeTestFile([]float64{10, 7, 3}, []float64{1, 2, 3}).SaveTo(store, pathA); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := extremeTestFile([]float64{9, 5, 2}, []float64{4, 5, 6}).SaveTo(store, pathB); err != nil {
		t.Fatalf("save b: %v", err)
	}

	if _, err := MergeFiles([]string{pathA, pathB}, pathMerged); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	merged, err := LoadResultData(pathMerged)
	if err != nil {
		t.Fatalf("load merged: %v", err)
	}
	assertFloats(t, readColumn(t, merged, "WaterLevelMaximum"), []float64{10, 9, 7, 5, 3, 2}, "values")
	assertFloats(t, readColumn(t, merged, "WaterLevelMaximumTime"), []float64{1, 4, 2, 5, 3, 6}, "times")
}

func TestMergeMissingInputFileFailsAtLoad(t *testing.T) {
	_, err := MergeFiles([]string{"/nonexistent/file.res1d.json"}, "")
	if err == nil {
		t.Fatal("expected load failure for missing input")
	}
}

func TestS3StoreHandlesStoreType(t *testing.T) {
	if os.Getenv("RES1D_AWS_S3_BUCKET") == "" {
		t.Skip("S3 store not configured for testing")
	}
	store, err := NewS3ResultStore("")
	if err != nil {
		t.Skip("S3 store not available for testing:", err)
	}
	if !store.HandlesStoreType(S3) {
		t.Error("S3 store should handle the S3 store type")
	}
	if store.HandlesStoreType(FILE) {
		t.Error("S3 store should not handle the FILE store type")
	}
}
