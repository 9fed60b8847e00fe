package album

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/programista-nautil/galeria-app/internal/drive"
	"github.com/programista-nautil/galeria-app/pkg/markers"
)

type fakeDrive struct {
	folders map[string][]drive.File // parentID -> album folders
	files   map[string][]drive.File // parentID -> files
	created []string
	uploads []string
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		folders: map[string][]drive.File{},
		files:   map[string][]drive.File{},
	}
}

func (f *fakeDrive) ListFiles(_ context.Context, q drive.Query) ([]drive.File, error) {
	var source []drive.File
	if q.FoldersOnly {
		source = f.folders[q.ParentID]
	} else {
		source = f.files[q.ParentID]
	}

	var out []drive.File
	for _, file := range source {
		if q.NameContains != "" && !strings.Contains(file.Name, q.NameContains) {
			continue
		}
		out = append(out, file)
		if q.PageSize > 0 && int64(len(out)) == q.PageSize {
			break
		}
	}
	return out, nil
}

func (f *fakeDrive) Download(_ context.Context, fileID string) (io.ReadCloser, string, error) {
	if fileID == "missing" {
		return nil, "", errors.New("not found")
	}
	contentType := "image/jpeg"
	if fileID == "clip" {
		contentType = ""
	}
	return io.NopCloser(strings.NewReader("bytes")), contentType, nil
}

func (f *fakeDrive) CreateFolder(_ context.Context, name, _ string) (string, error) {
	f.created = append(f.created, name)
	return "new-album", nil
}

func (f *fakeDrive) UploadFile(_ context.Context, _, name, _ string, _ []byte) (string, error) {
	f.uploads = append(f.uploads, name)
	return "uploaded-" + name, nil
}

type fakeResolver string

func (r fakeResolver) ClientFolderID(_ context.Context, _ string) (string, error) {
	if r == "" {
		return "", errors.New("no folder mapping")
	}
	return string(r), nil
}

type fakeCoverSetter struct {
	calls []string
	err   error
}

func (fc *fakeCoverSetter) SetInitialCover(_ context.Context, _, fileID string) (string, error) {
	fc.calls = append(fc.calls, fileID)
	if fc.err != nil {
		return "", fc.err
	}
	return fileID + markers.Cover + ".jpg", nil
}

type fakeCompressor struct {
	albums []string
}

func (fc *fakeCompressor) CompressAlbum(albumID string) string {
	fc.albums = append(fc.albums, albumID)
	return "job-" + albumID
}

func newTestService(fd *fakeDrive) (*Service, *fakeCoverSetter, *fakeCompressor) {
	cover := &fakeCoverSetter{}
	compressor := &fakeCompressor{}
	return NewService(fd, fakeResolver("client"), cover, compressor), cover, compressor
}

func TestAlbums_SortedNewestFirstUndatedLast(t *testing.T) {
	fd := newFakeDrive()
	fd.folders["client"] = []drive.File{
		{ID: "a1", Name: "2024-03-10 Spring Session"},
		{ID: "a2", Name: "Archive"},
		{ID: "a3", Name: "2025-01-05 Winter Wedding"},
		{ID: "a4", Name: "Backstage"},
	}
	svc, _, _ := newTestService(fd)

	albums, err := svc.Albums(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("Albums failed: %v", err)
	}

	var order []string
	for _, a := range albums {
		order = append(order, a.ID)
	}
	want := []string{"a3", "a1", "a2", "a4"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", order, want)
		}
	}

	if albums[0].Title != "Winter Wedding" || albums[0].Date != "2025-01-05" {
		t.Errorf("unexpected title/date for first album: %+v", albums[0])
	}
	if albums[2].Title != "Archive" || albums[2].Date != "" {
		t.Errorf("undated album should keep its name as title: %+v", albums[2])
	}
}

func TestAlbums_CoverThumbnailPrefersMarkedFile(t *testing.T) {
	fd := newFakeDrive()
	fd.folders["client"] = []drive.File{{ID: "a1", Name: "2024-03-10 Spring"}}
	fd.files["a1"] = []drive.File{
		{ID: "p1", Name: "first.jpg", ThumbnailLink: "thumb-first"},
		{ID: "p2", Name: "chosen_cover.jpg", ThumbnailLink: "thumb-cover"},
	}
	svc, _, _ := newTestService(fd)

	albums, err := svc.Albums(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("Albums failed: %v", err)
	}
	if albums[0].CoverThumbnail != "thumb-cover" {
		t.Errorf("expected marked file's thumbnail, got '%s'", albums[0].CoverThumbnail)
	}
}

func TestAlbums_CoverThumbnailFallsBackToFirstImage(t *testing.T) {
	fd := newFakeDrive()
	fd.folders["client"] = []drive.File{{ID: "a1", Name: "2024-03-10 Spring"}}
	fd.files["a1"] = []drive.File{
		{ID: "p1", Name: "first.jpg", ThumbnailLink: "thumb-first"},
		{ID: "p2", Name: "second.jpg", ThumbnailLink: "thumb-second"},
	}
	svc, _, _ := newTestService(fd)

	albums, err := svc.Albums(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("Albums failed: %v", err)
	}
	if albums[0].CoverThumbnail != "thumb-first" {
		t.Errorf("expected first image's thumbnail, got '%s'", albums[0].CoverThumbnail)
	}
}

func TestPhotos_PromotesFirstNonVideoWhenCoverless(t *testing.T) {
	fd := newFakeDrive()
	fd.files["a1"] = []drive.File{
		{ID: "v1", Name: "clip.mp4", IsVideo: true},
		{ID: "p1", Name: "portrait.jpg"},
		{ID: "p2", Name: "group.jpg"},
	}
	svc, cover, _ := newTestService(fd)

	photos, err := svc.Photos(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Photos failed: %v", err)
	}

	if len(cover.calls) != 1 || cover.calls[0] != "p1" {
		t.Errorf("expected exactly one promotion of p1, got %v", cover.calls)
	}
	if !markers.Has(photos[1].Name, markers.Cover) {
		t.Errorf("expected promoted photo's name updated in the listing, got '%s'", photos[1].Name)
	}
}

func TestPhotos_NoPromotionWhenCoverExists(t *testing.T) {
	fd := newFakeDrive()
	fd.files["a1"] = []drive.File{
		{ID: "p1", Name: "portrait_cover.jpg"},
		{ID: "p2", Name: "group.jpg"},
	}
	svc, cover, _ := newTestService(fd)

	if _, err := svc.Photos(context.Background(), "a1"); err != nil {
		t.Fatalf("Photos failed: %v", err)
	}
	if len(cover.calls) != 0 {
		t.Errorf("expected no promotion, got %v", cover.calls)
	}
}

func TestPhotos_PromotionFailureDoesNotFailListing(t *testing.T) {
	fd := newFakeDrive()
	fd.files["a1"] = []drive.File{{ID: "p1", Name: "portrait.jpg"}}
	svc, cover, _ := newTestService(fd)
	cover.err = errors.New("rename rejected")

	photos, err := svc.Photos(context.Background(), "a1")
	if err != nil {
		t.Fatalf("expected listing to survive a failed promotion, got %v", err)
	}
	if len(photos) != 1 || photos[0].Name != "portrait.jpg" {
		t.Errorf("expected untouched listing, got %+v", photos)
	}
}

func TestCreateAlbum_UploadsAndQueuesCompression(t *testing.T) {
	fd := newFakeDrive()
	svc, _, compressor := newTestService(fd)

	uploads := []Upload{
		{Name: "one.jpg", MimeType: "image/jpeg", Content: []byte("a")},
		{Name: "", Content: []byte("b")},
	}
	albumID, err := svc.CreateAlbum(context.Background(), "anna@example.com", "Summer Trip", uploads)
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}

	if albumID != "new-album" {
		t.Errorf("unexpected album ID '%s'", albumID)
	}
	if len(fd.created) != 1 || !strings.HasSuffix(fd.created[0], " Summer Trip") {
		t.Errorf("expected a date-prefixed folder name, got %v", fd.created)
	}
	if len(fd.uploads) != 2 || fd.uploads[1] != "unnamed-photo.jpg" {
		t.Errorf("expected nameless upload to get a default name, got %v", fd.uploads)
	}
	if len(compressor.albums) != 1 || compressor.albums[0] != "new-album" {
		t.Errorf("expected compression queued for the new album, got %v", compressor.albums)
	}
}

func TestStream_FallsBackToVideoContentType(t *testing.T) {
	fd := newFakeDrive()
	svc, _, _ := newTestService(fd)

	body, contentType, err := svc.Stream(context.Background(), "clip")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	defer body.Close()

	if contentType != "video/mp4" {
		t.Errorf("expected video/mp4 fallback, got '%s'", contentType)
	}
}
