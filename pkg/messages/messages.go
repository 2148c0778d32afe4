// Package messages centralizes user-facing and log message literals so they
// can be reused across the code-base and kept consistent. Constants are
// grouped by functional area (uploads, chat, external services).
package messages

const (
	// Upload validation: user-facing rejection reasons. Wrong-type and
	// corrupted rejections are worded differently on purpose so the UI can
	// suggest "pick another file" vs "re-upload".
	ErrFileMissing       = "File does not exist or is not accessible."
	ErrFileEmpty         = "File is empty or corrupted."
	ErrTypeUndetectable  = "Unable to determine file type. File may be corrupted."
	ErrTypeNotAllowed    = "File type %s is not allowed. Please upload PDF, image, or audio files only."
	ErrPDFEmpty          = "PDF file appears to be empty or corrupted."
	ErrPDFUnreadable     = "PDF file is corrupted and cannot be processed."
	ErrImageDimensions   = "Image has invalid dimensions."
	ErrImageUnreadable   = "Image file is corrupted or in an unsupported format."
	ErrInvalidFilename   = "Invalid filename provided."
	ErrNoFile            = "No file selected"
	ErrUploadFailed      = "Failed to process file upload. Please try again."
	ErrFileTooLarge      = "File too large. Maximum size is %s."
	MsgPDFNoText         = "Unable to extract text from the PDF document. The file may be image-based or corrupted."
	MsgFileUploaded      = "File uploaded successfully: %s"
	MsgImageAnalysisHead = "**Image Analysis Results:**\n\n%s"

	// Chat / AI
	ErrEmptyMessage  = "Message cannot be empty"
	ErrNoSession     = "No active session"
	ErrChatFailed    = "Failed to process message. Please try again."
	ErrEmptyPrompt   = "Prompt cannot be empty"
	ErrImageGen      = "Failed to generate image. Please try again."
	ErrTranscription = "Failed to transcribe audio. Please try again."
	ErrNoAudioFile   = "No audio file provided"

	// External content
	ErrEmptyURL      = "URL cannot be empty"
	ErrScrapeFailed  = "Failed to scrape content. Please try again."
	ErrEmptyQuery    = "Search query is required"
	ErrSearchFailed  = "Failed to search videos. Please try again."
	ErrStandards     = "Failed to search standards. Please try again."
	ErrSuggestions   = "Failed to get suggestions. Please try again."
	ErrEmptyTTSText  = "Text is required for speech synthesis"
	ErrTTSFailed     = "Text-to-speech service unavailable"
	ErrAudioNotFound = "Audio file not found"

	// Generic
	ErrMessageNotFound = "Message not found"
	ErrDeleteMessage   = "Failed to delete message. Please try again."
	ErrInternal        = "An internal error occurred. Please try again."

	// Log-side messages
	MsgCleanupDone     = "cleaned up old uploaded files"
	MsgServerStarting  = "starting NDE assistant API server"
	MsgSessionCreated  = "created new chat session"
	MsgUploadRejected  = "upload rejected"
	MsgUploadIngested  = "upload ingested"
	MsgHashUnavailable = "could not fingerprint file, recording hash as unknown"
)
