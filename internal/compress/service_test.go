package compress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/programista-nautil/galeria-app/internal/drive"
	"github.com/programista-nautil/galeria-app/pkg/markers"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

type fakeFile struct {
	name    string
	content []byte
}

// fakeDrive is an in-memory album folder.
type fakeDrive struct {
	files       map[string]*fakeFile // fileID -> file
	downloadErr map[string]error
	folders     map[string][]string // parentID -> child folder IDs (for bulk)
	updates     int
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		files:       map[string]*fakeFile{},
		downloadErr: map[string]error{},
		folders:     map[string][]string{},
	}
}

func (f *fakeDrive) ListFiles(_ context.Context, q drive.Query) ([]drive.File, error) {
	var out []drive.File
	if q.FoldersOnly {
		for _, id := range f.folders[q.ParentID] {
			out = append(out, drive.File{ID: id, Name: id})
		}
		return out, nil
	}
	for id, file := range f.files {
		if q.ExcludeNameContains != "" && strings.Contains(file.name, q.ExcludeNameContains) {
			continue
		}
		out = append(out, drive.File{ID: id, Name: file.name})
	}
	return out, nil
}

func (f *fakeDrive) DownloadBytes(_ context.Context, fileID string) ([]byte, error) {
	if err := f.downloadErr[fileID]; err != nil {
		return nil, err
	}
	file, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return file.content, nil
}

func (f *fakeDrive) UpdateContent(_ context.Context, fileID, newName, _ string, content []byte) error {
	file, ok := f.files[fileID]
	if !ok {
		return errors.New("file not found")
	}
	file.name = newName
	file.content = content
	f.updates++
	return nil
}

type fakeResolver string

func (r fakeResolver) ClientFolderID(_ context.Context, _ string) (string, error) {
	if r == "" {
		return "", errors.New("no folder")
	}
	return string(r), nil
}

// runJob drives one album compression synchronously.
func runJob(s *Service, albumID string) string {
	jobID, _ := s.jobManager.Start(albumID)
	s.run(context.Background(), jobID, albumID)
	return jobID
}

func TestRun_MarksEveryPhotoOnce(t *testing.T) {
	fd := newFakeDrive()
	fd.files["f1"] = &fakeFile{name: "a.jpg", content: testJPEG(t, 100, 80)}
	fd.files["f2"] = &fakeFile{name: "b.jpg", content: testJPEG(t, 80, 100)}
	svc := NewService(fd, fakeResolver("client"))

	jobID := runJob(svc, "album")

	for id, file := range fd.files {
		if !markers.Has(file.name, markers.Compressed) {
			t.Errorf("expected %s to carry the compressed marker, got '%s'", id, file.name)
		}
		if strings.Count(file.name, markers.Compressed) != 1 {
			t.Errorf("expected exactly one marker on %s, got '%s'", id, file.name)
		}
	}

	status, ok := svc.JobStatus(jobID)
	if !ok {
		t.Fatal("expected job status to be queryable")
	}
	if status.Status != StatusCompleted || status.Processed != 2 || status.Failed != 0 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestRun_SecondPassProcessesNothing(t *testing.T) {
	fd := newFakeDrive()
	fd.files["f1"] = &fakeFile{name: "a.jpg", content: testJPEG(t, 100, 80)}
	svc := NewService(fd, fakeResolver("client"))

	runJob(svc, "album")
	updatesAfterFirst := fd.updates

	jobID := runJob(svc, "album")

	if fd.updates != updatesAfterFirst {
		t.Errorf("expected no updates on second pass, got %d more", fd.updates-updatesAfterFirst)
	}
	status, _ := svc.JobStatus(jobID)
	if status.Status != StatusCompleted || status.Total != 0 {
		t.Errorf("expected completed no-op job, got %+v", status)
	}
}

func TestRun_OneBadPhotoDoesNotHaltBatch(t *testing.T) {
	fd := newFakeDrive()
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("f%d", i)
		fd.files[id] = &fakeFile{name: id + ".jpg", content: testJPEG(t, 60, 40)}
	}
	fd.downloadErr["f3"] = errors.New("upstream hiccup")
	svc := NewService(fd, fakeResolver("client"))

	jobID := runJob(svc, "album")

	status, _ := svc.JobStatus(jobID)
	if status.Processed != 9 || status.Failed != 1 {
		t.Errorf("expected 9 processed and 1 failed, got %+v", status)
	}
	if markers.Has(fd.files["f3"].name, markers.Compressed) {
		t.Errorf("expected failed photo to keep its name, got '%s'", fd.files["f3"].name)
	}
}

func TestRun_UndecodableFileIsIsolated(t *testing.T) {
	fd := newFakeDrive()
	fd.files["good"] = &fakeFile{name: "good.jpg", content: testJPEG(t, 60, 40)}
	fd.files["bad"] = &fakeFile{name: "bad.jpg", content: []byte("not an image")}
	svc := NewService(fd, fakeResolver("client"))

	jobID := runJob(svc, "album")

	status, _ := svc.JobStatus(jobID)
	if status.Processed != 1 || status.Failed != 1 {
		t.Errorf("expected 1 processed and 1 failed, got %+v", status)
	}
}

func TestJobManager_PerAlbumExclusion(t *testing.T) {
	jm := NewJobManager()

	first, started := jm.Start("album")
	if !started {
		t.Fatal("expected first job to start")
	}

	second, started := jm.Start("album")
	if started {
		t.Error("expected second start for same album to be refused")
	}
	if second != first {
		t.Errorf("expected running job ID back, got '%s' vs '%s'", second, first)
	}

	// A different album is independent
	if _, started := jm.Start("other-album"); !started {
		t.Error("expected job for another album to start")
	}

	// After completion the album can be compressed again
	jm.MarkCompleted(first)
	third, started := jm.Start("album")
	if !started {
		t.Error("expected a new job after the first completed")
	}
	if third == first {
		t.Error("expected a fresh job ID")
	}
}

func TestCompressFile_RenamesAndShrinks(t *testing.T) {
	fd := newFakeDrive()
	fd.files["f1"] = &fakeFile{name: "vacation.jpg", content: testJPEG(t, 2000, 1000)}
	svc := NewService(fd, fakeResolver("client"))

	newName, err := svc.CompressFile(context.Background(), "f1", "vacation.jpg")
	if err != nil {
		t.Fatalf("CompressFile failed: %v", err)
	}
	if newName != "vacation_compressed.jpg" {
		t.Errorf("expected 'vacation_compressed.jpg', got '%s'", newName)
	}

	img, err := jpeg.Decode(bytes.NewReader(fd.files["f1"].content))
	if err != nil {
		t.Fatalf("stored content is not a JPEG: %v", err)
	}
	if img.Bounds().Dx() > 1920 || img.Bounds().Dy() > 1920 {
		t.Errorf("expected stored photo within 1920 bound, got %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestBulkCompress_StartsOneJobPerAlbum(t *testing.T) {
	fd := newFakeDrive()
	fd.folders["client"] = []string{"album1", "album2", "album3"}
	svc := NewService(fd, fakeResolver("client"))

	jobIDs, err := svc.BulkCompress(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("BulkCompress failed: %v", err)
	}
	if len(jobIDs) != 3 {
		t.Errorf("expected 3 jobs, got %d", len(jobIDs))
	}
}

func TestBulkCompress_ResolverFailure(t *testing.T) {
	svc := NewService(newFakeDrive(), fakeResolver(""))

	if _, err := svc.BulkCompress(context.Background(), "anna@example.com"); err == nil {
		t.Error("expected error when the client folder cannot be resolved")
	}
}
