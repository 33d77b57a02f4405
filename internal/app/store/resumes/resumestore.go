// Package resumestore persists resume uploads in a GridFS bucket.
//
// The rest of the application treats a resume as an opaque blob: the
// roster keeps only the reference string returned by Put, and nothing
// ever inspects the content. Removing a roster member does not remove
// their blob; an orphaned file is as tolerated as a stale assignee.
package resumestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadRef is returned when a reference string does not name a stored
// blob.
var ErrBadRef = errors.New("unknown resume reference")

const bucketName = "resumes"

// Store wraps the GridFS bucket holding resume blobs.
type Store struct {
	bucket *gridfs.Bucket
}

func New(db *mongo.Database) (*Store, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}
	return &Store{bucket: bucket}, nil
}

// Put stores the blob and returns an opaque reference for it. The
// stored name is uuid-prefixed so repeated uploads of "resume.pdf"
// never collide.
func (s *Store) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"content_type": contentType,
		"uploaded_at":  time.Now(),
	})

	fileID, err := s.bucket.UploadFromStream(name, r, opts)
	if err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}
	return fileID.Hex(), nil
}

// Info describes a stored blob.
type Info struct {
	Name        string
	Length      int64
	ContentType string
}

// Open returns a reader over the blob named by ref, plus its metadata.
// The caller owns closing the reader. Returns ErrBadRef for an unknown
// or malformed reference.
func (s *Store) Open(ctx context.Context, ref string) (io.ReadCloser, Info, error) {
	id, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return nil, Info{}, ErrBadRef
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, Info{}, err
		}
	}

	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, Info{}, ErrBadRef
		}
		return nil, Info{}, err
	}

	file := stream.GetFile()
	info := Info{Name: file.Name, Length: file.Length}
	var meta struct {
		ContentType string `bson:"content_type"`
	}
	if file.Metadata != nil {
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			info.ContentType = meta.ContentType
		}
	}
	return stream, info, nil
}

// sanitizeFilename strips path components and characters that could be
// problematic in a stored name.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
