package util

import (
	"encoding/json"
	"fmt"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioInfo describes a call recording as reported by ffprobe.
type AudioInfo struct {
	Duration float64 `json:"duration"`
	Codec    string  `json:"codec"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// GetAudioInfo probes a recording file. Provider recordings arrive as ogg
// or wav depending on the egress settings, so nothing about the container
// is assumed.
func GetAudioInfo(audioPath string) (*AudioInfo, error) {
	fileInfo, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("recording file not found: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe recording: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			CodecName string `json:"codec_name"`
		} `json:"streams"`
		Format struct {
			FormatName string `json:"format_name"`
			Duration   string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %v", err)
	}

	info := &AudioInfo{
		Format: result.Format.FormatName,
		Size:   fileInfo.Size(),
	}
	fmt.Sscanf(result.Format.Duration, "%f", &info.Duration)
	for _, s := range result.Streams {
		if s.CodecType == "audio" {
			info.Codec = s.CodecName
			break
		}
	}

	return info, nil
}

// TranscodeToMP3 converts a recording to mp3 for storage and playback.
func TranscodeToMP3(inputPath, outputPath string) error {
	err := ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{"acodec": "libmp3lame", "q:a": 2}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("transcode recording: %v", err)
	}
	return nil
}
