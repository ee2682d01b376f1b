package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotAuthorized means Google rejected the application default
// credentials or the project lacks the Text-to-Speech API.
var ErrNotAuthorized = errors.New("text-to-speech credentials rejected")

// GoogleSynthesizer uses Google Cloud Text-to-Speech. Credentials come
// from the application default credentials.
type GoogleSynthesizer struct {
	client *texttospeech.Client
	voice  string
}

// NewGoogleSynthesizer creates a client for voice.
func NewGoogleSynthesizer(ctx context.Context, voice string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return &GoogleSynthesizer{client: client, voice: voice}, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, synthesisRequest(g.voice, text))
	if err != nil {
		return nil, classifyRPCError(err)
	}
	return resp.AudioContent, nil
}

func classifyRPCError(err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}
	return fmt.Errorf("synthesize speech: %w", err)
}

func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}

func synthesisRequest(voice, text string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(voice),
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  0.9,
		},
	}
}

// languageCode extracts "de-DE" from a voice name like "de-DE-Neural2-B".
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 2 {
		return "de-DE"
	}
	return parts[0] + "-" + parts[1]
}
