package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/luobo-captcha/internal/sunau"
)

// ErrUnsupportedAudioFormat 音频扩展名不受支持
var ErrUnsupportedAudioFormat = errors.New("unsupported audio format")

// ResourceManager is responsible for centralized management of widget resources.
// It provides loading and caching mechanisms for images, sound clips and fonts,
// ensuring that resources are loaded only once and reused for every challenge.
//
// Resource paths in the captcha catalog are absolute-looking web paths such as
// "/captcha-images/kaimen/group_1/0.jpg". They are resolved relative to the
// assets directory given at construction time.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// All loading happens on the game loop goroutine.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, "assets")
//	img, err := rm.LoadImage("/captcha-images/kaimen/group_1/0.jpg")
//	if err != nil {
//	    log.Printf("Failed to load image: %v", err)
//	}
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image // Cache for loaded images: resolved path -> Image
	audioCache    map[string]*audio.Player // Cache for loaded sound players: resolved path -> Player
	audioContext  *audio.Context           // Global audio context for audio decoding
	fontFaceCache map[string]text.Face     // Cache for text faces: "path@size" -> Face
	assetsDir     string                   // Root directory for catalog paths
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context used for decoding and playing sounds.
//     May be nil when the caller never loads audio (e.g. asset tools).
//   - assetsDir: Directory that catalog paths are resolved against. Empty means
//     paths are used as-is.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager(audioContext *audio.Context, assetsDir string) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]text.Face),
		assetsDir:     assetsDir,
	}
}

// Resolve converts a catalog path into a file system path.
//
// Example:
//
//	rm := NewResourceManager(ctx, "assets")
//	rm.Resolve("/vocals/luobo-1.wav") // "assets/vocals/luobo-1.wav"
func (rm *ResourceManager) Resolve(path string) string {
	if rm.assetsDir == "" {
		return path
	}
	trimmed := strings.TrimPrefix(filepath.ToSlash(path), "/")
	return filepath.Join(rm.assetsDir, filepath.FromSlash(trimmed))
}

// LoadImage loads an image file and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be opened.
//   - Returns an error if the image format is not supported or the file is corrupted.
//   - Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	resolved := rm.Resolve(path)

	// Check if the image is already cached
	if cachedImage, exists := rm.imageCache[resolved]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", resolved, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", resolved, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[resolved] = ebitenImg

	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[rm.Resolve(path)]
}

// LoadSoundEffect loads a one-shot sound (no loop) and caches its player.
// Supported formats: WAV (.wav), MP3 (.mp3), OGG Vorbis (.ogg) and Sun audio (.au).
// Streams are resampled to the audio context's sample rate.
//
// Returns:
//   - A pointer to the audio player (ready to play, but not started).
//   - An error wrapping ErrUnsupportedAudioFormat for unknown extensions, or the
//     underlying I/O or decode error.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	resolved := rm.Resolve(path)

	if cachedPlayer, exists := rm.audioCache[resolved]; exists {
		return cachedPlayer, nil
	}

	// Check the extension before touching the file system
	ext := strings.ToLower(filepath.Ext(resolved))
	switch ext {
	case ".wav", ".mp3", ".ogg", ".au":
	default:
		return nil, fmt.Errorf("%w: %s (supported: .wav, .mp3, .ogg, .au)", ErrUnsupportedAudioFormat, ext)
	}

	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for sound effect %s", resolved)
	}

	audioData, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", resolved, err)
	}

	stream, err := rm.decodeSound(ext, bytes.NewReader(audioData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound effect %s: %w", resolved, err)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", resolved, err)
	}

	rm.audioCache[resolved] = player
	return player, nil
}

// decodeSound decodes an in-memory sound at the context sample rate
func (rm *ResourceManager) decodeSound(ext string, reader io.Reader) (io.ReadSeeker, error) {
	sampleRate := rm.audioContext.SampleRate()
	switch ext {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, reader)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, reader)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, reader)
	case ".au":
		stream, err := sunau.Decode(reader)
		if err != nil {
			return nil, err
		}
		if stream.SampleRate() == sampleRate {
			return stream, nil
		}
		return audio.Resample(stream, stream.Length(), stream.SampleRate(), sampleRate), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAudioFormat, ext)
	}
}

// GetAudioPlayer retrieves a previously loaded sound player from the cache.
// Returns nil if the sound has not been loaded yet.
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[rm.Resolve(path)]
}

// LoadFont loads a TrueType/OpenType font at the given size.
// Fonts are cached by path and size.
func (rm *ResourceManager) LoadFont(path string, size float64) (text.Face, error) {
	cacheKey := fmt.Sprintf("%s@%.1f", path, size)
	if face, exists := rm.fontFaceCache[cacheKey]; exists {
		return face, nil
	}

	data, err := os.ReadFile(rm.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	face := &text.GoTextFace{Source: source, Size: size}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// FontOrFallback loads the font and falls back to the built-in 7x13 bitmap face.
// The fallback face only covers ASCII, so CJK labels render as boxes without
// a real font file.
func (rm *ResourceManager) FontOrFallback(path string, size float64) text.Face {
	if path != "" {
		if face, err := rm.LoadFont(path, size); err == nil {
			return face
		}
	}
	return FallbackFace()
}

// FallbackFace returns the built-in bitmap face
func FallbackFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}
