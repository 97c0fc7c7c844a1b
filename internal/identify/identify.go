// Package identify names the product in a photograph using the vision
// capability.
package identify

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finsync/reality-lens/pkg/anthropic"
)

// ErrUndecodableImage marks input bytes that are not a valid image. An
// undecodable image makes the whole scan meaningless, so this is the one
// component failure that propagates instead of degrading.
var ErrUndecodableImage = eris.New("identify: image bytes are not a decodable image")

// visionPrompt demands a single specific product name. Category-level answers
// are disallowed by instruction only; downstream tolerates non-compliance.
const visionPrompt = `Identify this product. Be extremely specific.
- If it's a phone, say "iPhone 15 Pro" or "Samsung S24", not just "Smartphone".
- If it's a bottle, say "Stanley Cup" or "Milton Bottle".
- If it's a laptop, say "MacBook Air M2".
Return ONLY the product name.`

// Identifier wraps the vision capability with the specificity prompt.
type Identifier struct {
	ai        anthropic.Client
	model     string
	maxTokens int64
}

// NewIdentifier creates an Identifier using the given vision model.
func NewIdentifier(ai anthropic.Client, model string, maxTokens int64) *Identifier {
	return &Identifier{ai: ai, model: model, maxTokens: maxTokens}
}

// Identify decodes the image bytes and asks the vision capability for a
// specific product name. The returned name is trimmed response text.
func (i *Identifier) Identify(ctx context.Context, imageBytes []byte) (string, error) {
	mediaType, err := sniffImage(imageBytes)
	if err != nil {
		return "", err
	}

	resp, err := i.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     i.model,
		MaxTokens: i.maxTokens,
		Messages: []anthropic.Message{
			anthropic.UserMessage(
				anthropic.TextBlock(visionPrompt),
				anthropic.ImageBlock(mediaType, imageBytes),
			),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "identify: vision call")
	}

	name := strings.TrimSpace(resp.Text())
	if name == "" {
		return "", eris.New("identify: empty vision response")
	}

	zap.L().Info("identify: product identified", zap.String("product", name))
	return name, nil
}

// sniffImage validates the bytes decode as a known image format and returns
// the corresponding media type.
func sniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", eris.Wrap(ErrUndecodableImage, err.Error())
	}
	switch format {
	case "jpeg":
		return "image/jpeg", nil
	case "png":
		return "image/png", nil
	case "gif":
		return "image/gif", nil
	default:
		return "", eris.Wrapf(ErrUndecodableImage, "unsupported format %s", format)
	}
}
