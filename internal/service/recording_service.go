package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/logger"

	"go.uber.org/zap"
)

// RecordingService normalizes provider call recordings to mp3 and stores
// them, linking the result to the call session.
type RecordingService struct {
	storage  *StorageService
	sessions CallSessionStore
}

func NewRecordingService(storage *StorageService, sessions CallSessionStore) *RecordingService {
	return &RecordingService{storage: storage, sessions: sessions}
}

// Store transcodes the uploaded recording and uploads the mp3, returning
// its URL. The original upload is transient; only the mp3 is kept.
func (s *RecordingService) Store(ctx context.Context, roomName string, upload io.Reader) (string, error) {
	if _, err := s.sessions.FindByRoomName(roomName); err != nil {
		return "", util.ErrSessionNotFound
	}

	tmpDir, err := os.MkdirTemp("", "recording-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	rawPath := filepath.Join(tmpDir, "raw")
	raw, err := os.Create(rawPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(raw, upload); err != nil {
		raw.Close()
		return "", err
	}
	raw.Close()

	info, err := util.GetAudioInfo(rawPath)
	if err != nil {
		return "", fmt.Errorf("recording for %s unreadable: %w", roomName, err)
	}
	logger.Log.Info("recording received",
		zap.String("room", roomName),
		zap.Float64("duration", info.Duration),
		zap.String("codec", info.Codec),
	)

	mp3Path := filepath.Join(tmpDir, "recording.mp3")
	if err := util.TranscodeToMP3(rawPath, mp3Path); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("recordings/%s.mp3", roomName)
	fileURL, err := s.storage.UploadFile(ctx, objectName, mp3Path, "audio/mpeg")
	if err != nil {
		return "", err
	}

	if err := s.sessions.SetRecordingURL(roomName, fileURL); err != nil {
		return "", err
	}
	return fileURL, nil
}
