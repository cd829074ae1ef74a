package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var logger = diag.For("Resources")

// ResourceManager is responsible for centralized management of game resources.
// It loads images, fonts, music and sound effects from an fs.FS and caches them,
// so that each asset is decoded only once.
//
// Asset names are slash-separated paths relative to the asset root
// (e.g. "images/hero.png"). An image name of the form "#rrggbb" or
// "#rrggbbaa" produces a solid-color image without touching the file system,
// which is handy for prototyping levels before art exists.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading must happen on the game loop goroutine.
type ResourceManager struct {
	assets        fs.FS                    // Asset root
	audioContext  *audio.Context           // nil disables audio loading
	imageCache    map[string]*ebiten.Image // name -> Image
	missing       map[string]bool          // names already reported as missing
	musicCache    map[string]*audio.Player // name -> looping Player
	soundCache    map[string][]byte        // name -> decoded PCM
	fontFaceCache map[string]text.Face     // "name:size" -> Face
	sources       map[string]*text.GoTextFaceSource
	blank         *ebiten.Image
}

// NewResourceManager creates a new ResourceManager reading from assets.
// audioContext may be nil when sound is unavailable (headless tools).
func NewResourceManager(assets fs.FS, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		assets:        assets,
		audioContext:  audioContext,
		imageCache:    make(map[string]*ebiten.Image),
		missing:       make(map[string]bool),
		musicCache:    make(map[string]*audio.Player),
		soundCache:    make(map[string][]byte),
		fontFaceCache: make(map[string]text.Face),
		sources:       make(map[string]*text.GoTextFaceSource),
	}
}

// AudioContext returns the audio context (may be nil).
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

func (rm *ResourceManager) readFile(name string) ([]byte, error) {
	if rm.assets == nil {
		return nil, fmt.Errorf("no asset root for %s", name)
	}
	return fs.ReadFile(rm.assets, path.Clean(strings.TrimPrefix(name, "/")))
}

// LoadImage loads an image and caches it for future use.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be decoded.
//   - Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadImage(name string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[name]; exists {
		return cachedImage, nil
	}

	var ebitenImg *ebiten.Image
	if strings.HasPrefix(name, "#") {
		c, err := render.ParseHexColor(name)
		if err != nil {
			return nil, err
		}
		ebitenImg = ebiten.NewImage(1, 1)
		ebitenImg.Fill(c)
	} else {
		data, err := rm.readFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", name, err)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
		}
		ebitenImg = ebiten.NewImageFromImage(img)
	}

	rm.imageCache[name] = ebitenImg
	return ebitenImg, nil
}

// Image returns the named image, loading it on first use.
// A missing or broken image is reported once and replaced by a blank image,
// so a level with missing art still runs.
func (rm *ResourceManager) Image(name string) *ebiten.Image {
	img, err := rm.LoadImage(name)
	if err == nil {
		return img
	}
	if !rm.missing[name] {
		rm.missing[name] = true
		logger.Info("image unavailable, drawing blank", "name", name, "err", err)
	}
	if rm.blank == nil {
		rm.blank = ebiten.NewImage(1, 1)
	}
	return rm.blank
}

// decodeStream picks the decoder by file extension.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg), WAV (.wav) and Sun audio (.au).
// Sun audio is resampled to rate; the others are expected at the context rate.
func decodeStream(name string, data []byte, rate int) (interface {
	io.ReadSeeker
	Length() int64
}, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", name, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", name, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", name, err)
		}
		return s, nil
	case ".au":
		s, err := decodeAU(data, rate)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU audio %s: %w", name, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav, .au)", ext)
	}
}

// LoadMusic loads a music file wrapped in an infinite loop and caches the player.
func (rm *ResourceManager) LoadMusic(name string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.musicCache[name]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", name)
	}

	data, err := rm.readFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", name, err)
	}
	stream, err := decodeStream(name, data, rm.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}

	loopStream := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}

	rm.musicCache[name] = player
	return player, nil
}

// LoadSoundEffect decodes a sound effect once and returns a fresh player.
// Each call gets its own player so that overlapping plays do not cut each other off.
func (rm *ResourceManager) LoadSoundEffect(name string) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", name)
	}

	pcm, exists := rm.soundCache[name]
	if !exists {
		data, err := rm.readFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open sound effect file %s: %w", name, err)
		}
		stream, err := decodeStream(name, data, rm.audioContext.SampleRate())
		if err != nil {
			return nil, err
		}
		pcm, err = io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("failed to read sound effect %s: %w", name, err)
		}
		rm.soundCache[name] = pcm
	}

	return rm.audioContext.NewPlayerFromBytes(pcm), nil
}

// LoadFont loads a TrueType/OpenType font and creates a text face with the given size.
// The face is cached with a key combining name and size.
func (rm *ResourceManager) LoadFont(name string, size float64) (text.Face, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, ok := rm.sources[name]
	if !ok {
		fontData, err := rm.readFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
		}
		rm.sources[name] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// Font returns the named face, falling back to a built-in bitmap face
// when the name is empty or the font cannot be loaded.
func (rm *ResourceManager) Font(name string, size float64) text.Face {
	if name != "" {
		face, err := rm.LoadFont(name, size)
		if err == nil {
			return face
		}
		if !rm.missing[name] {
			rm.missing[name] = true
			logger.Info("font unavailable, using built-in face", "name", name, "err", err)
		}
	}
	key := fmt.Sprintf(":%.1f", size)
	if face, ok := rm.fontFaceCache[key]; ok {
		return face
	}
	face := text.NewGoXFace(basicfont.Face7x13)
	rm.fontFaceCache[key] = face
	return face
}
