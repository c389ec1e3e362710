package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"dmhub/internal/common"
	"dmhub/internal/dbmongo"

	"github.com/gorilla/mux"
)

const maxAvatarBytes = 8 << 20 // 8 MiB upload cap

// avatarStore is the slice of the GridFS-backed storage the server needs.
type avatarStore interface {
	UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*dbmongo.AvatarFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.Reader, *dbmongo.AvatarFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// HTTPServer resolves avatar references to displayable bytes and lets
// authenticated users manage their own avatar files. The DM service only
// hands out references; DM invariants never depend on this server.
type HTTPServer struct {
	storage avatarStore
	router  *mux.Router
}

func NewHTTPServer(mongoClient *dbmongo.MongoClient) *HTTPServer {
	return newServer(dbmongo.NewAvatarStorage(mongoClient))
}

func newServer(storage avatarStore) *HTTPServer {
	s := &HTTPServer{storage: storage}

	router := mux.NewRouter()
	router.HandleFunc("/media/{fileId}", s.serveFile).Methods("GET")
	router.Handle("/media", common.AuthMiddleware(http.HandlerFunc(s.uploadAvatar))).Methods("POST")
	router.Handle("/media/{fileId}", common.AuthMiddleware(http.HandlerFunc(s.deleteFile))).Methods("DELETE")
	router.HandleFunc("/health", s.health).Methods("GET")
	s.router = router

	return s
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fileId := vars["fileId"]

	fileReader, avatarFile, err := s.storage.DownloadFile(r.Context(), fileId)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	contentType := avatarFile.MimeType
	if contentType == "" {
		contentType = contentTypeFromName(avatarFile.Filename)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", avatarFile.Size))

	// Stream file directly to response
	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("Error streaming file: %v", err)
	}
}

// uploadAvatar stores a new avatar image for the authenticated caller and
// returns the reference the profile row should carry.
func (s *HTTPServer) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromName(header.Filename)
	}
	if !isImageType(contentType) {
		http.Error(w, "avatar must be an image", http.StatusBadRequest)
		return
	}

	avatarFile, err := s.storage.UploadFile(r.Context(), header.Filename, contentType, actor, file)
	if err != nil {
		log.Printf("avatar upload failed for %s: %v", actor, err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(avatarFile); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// deleteFile removes an avatar. Only the uploader may delete their own file.
func (s *HTTPServer) deleteFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.ActorID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	fileId := mux.Vars(r)["fileId"]

	_, avatarFile, err := s.storage.DownloadFile(r.Context(), fileId)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if avatarFile.UploadedBy != actor {
		http.Error(w, "Not the owner of this file", http.StatusForbidden)
		return
	}

	if err := s.storage.DeleteFile(r.Context(), fileId); err != nil {
		log.Printf("avatar delete failed for %s: %v", fileId, err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func contentTypeFromName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func isImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
