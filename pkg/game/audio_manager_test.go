package game

import (
	"testing"

	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/facts"
)

func newTestAudioManager(t *testing.T) (*AudioManager, *facts.Store) {
	t.Helper()
	store, err := facts.New(nil)
	if err != nil {
		t.Fatalf("facts.New: %v", err)
	}
	rm := NewResourceManager(testAssets(t), nil)
	return NewAudioManager(rm, store, config.DefaultEngine()), store
}

// TestAudioManager_MissingAudioIsHarmless 资源缺失时静默降级
func TestAudioManager_MissingAudioIsHarmless(t *testing.T) {
	am, _ := newTestAudioManager(t)

	am.PlaySound("audio/jump.ogg")
	am.PlaySound("audio/jump.ogg")
	am.PlayMusic("audio/theme.ogg")

	if am.MusicPlaying() {
		t.Error("no music should be playing")
	}
	if am.CurrentMusic() != "" {
		t.Errorf("CurrentMusic = %q, want empty", am.CurrentMusic())
	}
	if !am.missing["audio/jump.ogg"] || !am.missing["audio/theme.ogg"] {
		t.Error("missing audio should be remembered")
	}
	am.StopMusic()
}

func TestAudioManager_EmptyNameIgnored(t *testing.T) {
	am, _ := newTestAudioManager(t)
	am.PlaySound("")
	am.PlayMusic("")
	if len(am.missing) != 0 {
		t.Errorf("empty names should not be looked up, got %v", am.missing)
	}
}

// TestAudioManager_Volumes 音量默认值来自配置，设置后写入游戏级事实
func TestAudioManager_Volumes(t *testing.T) {
	am, store := newTestAudioManager(t)
	cfg := config.DefaultEngine()

	if am.MusicVolume() != cfg.MusicVolume {
		t.Errorf("MusicVolume = %v, want %v", am.MusicVolume(), cfg.MusicVolume)
	}
	if am.SoundVolume() != cfg.SoundVolume {
		t.Errorf("SoundVolume = %v, want %v", am.SoundVolume(), cfg.SoundVolume)
	}

	if err := am.SetMusicVolume(1.5); err != nil {
		t.Fatalf("SetMusicVolume: %v", err)
	}
	if am.MusicVolume() != 1 {
		t.Errorf("MusicVolume = %v, want clamped 1", am.MusicVolume())
	}
	if err := am.SetSoundVolume(0.25); err != nil {
		t.Fatalf("SetSoundVolume: %v", err)
	}
	if got := store.Game(FactSoundVolume, ""); got != "0.25" {
		t.Errorf("stored sound volume = %q, want 0.25", got)
	}

	store.SetGame(FactMusicVolume, "-3")
	if am.MusicVolume() != 0 {
		t.Errorf("MusicVolume = %v, want clamped 0", am.MusicVolume())
	}
}

// TestAudioManager_Toggles 关闭后不再尝试加载
func TestAudioManager_Toggles(t *testing.T) {
	am, _ := newTestAudioManager(t)

	if !am.MusicEnabled() || !am.SoundEnabled() {
		t.Fatal("audio should be enabled by default")
	}
	if err := am.ToggleMusic(); err != nil {
		t.Fatalf("ToggleMusic: %v", err)
	}
	if err := am.ToggleSound(); err != nil {
		t.Fatalf("ToggleSound: %v", err)
	}
	if am.MusicEnabled() || am.SoundEnabled() {
		t.Fatal("audio should be disabled after toggling")
	}

	am.PlayMusic("audio/theme.ogg")
	am.PlaySound("audio/jump.ogg")
	if len(am.missing) != 0 {
		t.Errorf("disabled audio should not be loaded, got %v", am.missing)
	}

	am.ToggleMusic()
	if !am.MusicEnabled() {
		t.Error("music should be enabled again")
	}
}

func TestAudioManager_NilFacts(t *testing.T) {
	rm := NewResourceManager(nil, nil)
	am := NewAudioManager(rm, nil, config.DefaultEngine())

	if err := am.SetMusicVolume(0.1); err != nil {
		t.Fatalf("SetMusicVolume: %v", err)
	}
	if am.MusicVolume() != 0.1 {
		t.Errorf("MusicVolume = %v, want 0.1", am.MusicVolume())
	}
	if !am.MusicEnabled() {
		t.Error("nil facts means always enabled")
	}
}
