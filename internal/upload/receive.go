package upload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sakif/personal-site/internal/apperror"
)

const (
	// fileField is the form field the media file must be sent in.
	fileField = "file"

	// formOverhead is the room left on top of the file cap for the text
	// fields and multipart boundaries.
	formOverhead int64 = 1 << 20

	// maxFieldBytes caps each text field.
	maxFieldBytes = 64 << 10

	// sniffBytes is how much of the file is inspected when the client sent
	// no Content-Type for it.
	sniffBytes = 3072
)

const msgFileType = "Only MP3, MP4, and MOV files are allowed"

// Submission is an accepted upload: the stored file plus the companion
// form fields, still unvalidated.
type Submission struct {
	Filename     string // generated name inside the media dir
	OriginalName string // client file name, for logging only
	Size         int64
	Title        string
	Description  string
	Date         string
}

// Receive streams a multipart/form-data request, stores its single "file"
// part and collects the title, description and date fields, which may come
// before or after the file.
//
// Errors: apperror.ErrTooLarge when the file or body exceeds the caps,
// apperror.ErrValidation for a malformed body, a missing or rejected file,
// or more than one file, and apperror.ErrStorage when writing fails. On any
// error no file is left in the media dir.
func (s *Store) Receive(w http.ResponseWriter, r *http.Request) (*Submission, error) {
	maxBody := s.maxSize + formOverhead
	if r.ContentLength > maxBody {
		return nil, apperror.TooLarge(s.maxSize)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, apperror.ValidationFailed("body", "Expected a multipart/form-data body")
	}

	sub := &Submission{}
	fail := func(err error) (*Submission, error) {
		if sub.Filename != "" {
			if rmErr := s.Remove(sub.Filename); rmErr != nil {
				s.logger.Error("failed to discard rejected upload",
					slog.String("filename", sub.Filename),
					slog.String("error", rmErr.Error()),
				)
			}
		}
		return nil, err
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(bodyError(err, s.maxSize))
		}

		if part.FileName() != "" {
			if part.FormName() != fileField {
				part.Close()
				return fail(apperror.InvalidFile(fmt.Sprintf("Unexpected file field %q", part.FormName())))
			}
			if sub.Filename != "" {
				part.Close()
				return fail(apperror.InvalidFile("Only one file may be uploaded"))
			}
			if err := s.receiveFile(part, sub); err != nil {
				part.Close()
				return fail(err)
			}
			part.Close()
			continue
		}

		value, err := readField(part)
		part.Close()
		if err != nil {
			return fail(bodyError(err, s.maxSize))
		}

		switch part.FormName() {
		case "title":
			sub.Title = value
		case "description":
			sub.Description = value
		case "date":
			sub.Date = value
		}
	}

	if sub.Filename == "" {
		return nil, apperror.InvalidFile("No file uploaded or invalid file type")
	}

	return sub, nil
}

// receiveFile checks the part against the type filter and writes it out.
func (s *Store) receiveFile(part *multipart.Part, sub *Submission) error {
	br := bufio.NewReaderSize(part, sniffBytes)

	declared := part.Header.Get("Content-Type")
	if declared == "" {
		head, _ := br.Peek(sniffBytes)
		declared = mimetype.Detect(head).String()
	}

	original := part.FileName()
	if !Allowed(original, declared) {
		s.logger.Info("upload rejected by type filter",
			slog.String("name", original),
			slog.String("mime", declared),
		)
		return apperror.InvalidFile(msgFileType)
	}

	name, size, err := s.save(br, storedExtension(original, declared))
	if err != nil {
		return err
	}

	sub.Filename = name
	sub.OriginalName = original
	sub.Size = size

	s.logger.Info("upload stored",
		slog.String("filename", name),
		slog.String("original", original),
		slog.Int64("bytes", size),
	)

	return nil
}

func readField(part *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxFieldBytes {
		return "", apperror.ValidationFailed(part.FormName(),
			fmt.Sprintf("%s must be %d bytes or fewer", part.FormName(), maxFieldBytes))
	}
	return strings.TrimSpace(string(b)), nil
}

// bodyError classifies a failure while reading the multipart stream.
func bodyError(err error, limit int64) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperror.TooLarge(limit)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.ValidationFailed("body", "Malformed multipart body")
}
