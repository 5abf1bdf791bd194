package models

import (
	"path/filepath"
	"strings"
)

// VideoExtension represents an accepted video container extension
type VideoExtension string

const (
	VideoExtensionMP4 VideoExtension = ".mp4"
	VideoExtensionAVI VideoExtension = ".avi"
	VideoExtensionMKV VideoExtension = ".mkv"
)

// IsAllowedVideo reports whether the filename carries an accepted container extension.
// Only the extension is checked, content is never sniffed.
func IsAllowedVideo(filename string) bool {
	switch VideoExtension(strings.ToLower(filepath.Ext(filename))) {
	case VideoExtensionMP4, VideoExtensionAVI, VideoExtensionMKV:
		return true
	default:
		return false
	}
}

// ContentType returns the MIME type served for the extension
func (e VideoExtension) ContentType() string {
	switch e {
	case VideoExtensionMP4:
		return "video/mp4"
	case VideoExtensionAVI:
		return "video/x-msvideo"
	case VideoExtensionMKV:
		return "video/x-matroska"
	default:
		return "application/octet-stream"
	}
}

// VideoContentType returns the MIME type of a video file based on its extension
func VideoContentType(filename string) string {
	return VideoExtension(strings.ToLower(filepath.Ext(filename))).ContentType()
}

// Video represents an uploaded video together with its description
type Video struct {
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Size        int64  `json:"size,omitempty"`
}

// ConsistencyReport lists records present in only one of the two video storage locations.
type ConsistencyReport struct {
	// OrphanFiles are binaries (or leftover upload temp files) with no metadata entry
	OrphanFiles []string `json:"orphanFiles"`
	// DanglingEntries are metadata entries whose binary is missing
	DanglingEntries []string `json:"danglingEntries"`
	// Repaired is true when the orphans above have been removed
	Repaired bool `json:"repaired"`
}

// Consistent reports whether no orphan was found.
func (r *ConsistencyReport) Consistent() bool {
	return len(r.OrphanFiles) == 0 && len(r.DanglingEntries) == 0
}
