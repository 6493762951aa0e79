package speech

import (
	"context"
	"fmt"
	"os"
	"regexp"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// Synthesizer turns a spoken summary into audio. The chat router hands every
// reply summary to one of these; a nil Synthesizer simply means voice output
// is off, callers must not treat that as an error.
type Synthesizer interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

var markupPattern = regexp.MustCompile(`<[^>]*>|[*#]`)

// CleanMarkup strips the lightweight display markup from reply text before
// synthesis so tags are not read aloud.
func CleanMarkup(text string) string {
	return markupPattern.ReplaceAllString(text, "")
}

// GoogleSynthesizer speaks through the Google Cloud Text-to-Speech API.
type GoogleSynthesizer struct {
	client *texttospeech.Client
	voice  string
}

// NewGoogleSynthesizer creates a TTS client. Credentials come from the
// GOOGLE_APPLICATION_CREDENTIALS file when set, otherwise application
// default credentials.
func NewGoogleSynthesizer(ctx context.Context, voice string) (*GoogleSynthesizer, error) {
	var opts []option.ClientOption
	if credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}
	if voice == "" {
		voice = "en-US-Wavenet-F"
	}
	return &GoogleSynthesizer{client: client, voice: voice}, nil
}

// Speak converts the text to MP3 audio.
func (s *GoogleSynthesizer) Speak(ctx context.Context, text string) ([]byte, error) {
	text = CleanMarkup(text)
	if text == "" {
		return nil, nil
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         s.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  1.0,
			Pitch:         1.05,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return resp.AudioContent, nil
}

// Close releases the underlying client.
func (s *GoogleSynthesizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
