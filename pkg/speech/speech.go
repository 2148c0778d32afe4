// Package speech synthesizes spoken audio for assistant responses, with text
// cleanup tuned for NDE terminology (abbreviations are spelled out, units
// expanded) so technical content is pronounceable.
package speech

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/hegedustibor/htgo-tts/voices"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

// FilePrefix marks generated audio files; the serving endpoint refuses
// anything without it.
const FilePrefix = "tts_"

// Synthesizer renders text to a WAV/MP3 file and returns its filename.
type Synthesizer interface {
	Speak(text string) (string, error)
}

// Service implements Synthesizer with the htgo-tts engine.
type Service struct {
	Dir    string
	Logger *logging.Logger
}

// NewService stores generated audio under dir.
func NewService(dir string, logger *logging.Logger) *Service {
	return &Service{Dir: dir, Logger: logger}
}

// Speak synthesizes the cleaned text and returns the generated file name
// (relative to the service directory).
func (s *Service) Speak(text string) (string, error) {
	name := FilePrefix + uuid.New().String()

	engine := htgotts.Speech{Folder: s.Dir, Language: voices.English}
	path, err := engine.CreateSpeechFile(CleanForSpeech(text), name)
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}

	return filepath.Base(path), nil
}

// Abbreviations spelled out letter-by-letter for clarity.
var abbreviations = regexp.MustCompile(`\b(NDE|NDT|UT|RT|MT|PT|ET|VT|ASME|ASTM|AWS|API)\b`)

var unitReplacer = strings.NewReplacer(
	"mm", "millimeters",
	"cm", "centimeters",
	"MHz", "megahertz",
	"kHz", "kilohertz",
	"dB", "decibels",
)

var markdownReplacer = strings.NewReplacer(
	"**", "", "*", "", "`", "",
	"#", "", "[", "", "]", "",
	"(", "", ")", "",
)

// CleanForSpeech strips markdown and expands NDE abbreviations and units so
// the synthesized audio reads naturally.
func CleanForSpeech(text string) string {
	text = markdownReplacer.Replace(text)

	text = abbreviations.ReplaceAllStringFunc(text, func(abbr string) string {
		letters := strings.Split(abbr, "")
		return strings.Join(letters, " ")
	})

	return unitReplacer.Replace(text)
}
