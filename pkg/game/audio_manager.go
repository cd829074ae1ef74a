package game

import (
	"strconv"

	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/facts"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

var audioLogger = diag.For("AudioManager")

// 游戏级事实中的音频设置键
const (
	FactMusicVolume  = "audio.music.volume"
	FactSoundVolume  = "audio.sound.volume"
	FactMusicEnabled = "audio.music.enabled"
	FactSoundEnabled = "audio.sound.enabled"
)

// AudioManager 音频管理器
// 职责：
//   - 播放音效与循环背景音乐
//   - 音量与开关从游戏级事实读取，缺省值来自引擎配置
//
// 加载失败的资源只记录一次 Info 日志，之后不再尝试加载。
type AudioManager struct {
	resourceManager *ResourceManager
	facts           *facts.Store // 可为 nil
	defaults        config.Engine
	active          []*audio.Player // 正在播放的音效
	currentMusic    *audio.Player
	currentMusicID  string
	missing         map[string]bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - store: 事实存储（用于读取音量设置，可为 nil）
//   - cfg: 引擎配置，提供默认音量
func NewAudioManager(rm *ResourceManager, store *facts.Store, cfg config.Engine) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		facts:           store,
		defaults:        cfg,
		missing:         make(map[string]bool),
	}
}

func (am *AudioManager) warnOnce(name string, err error) {
	if am.missing[name] {
		return
	}
	am.missing[name] = true
	audioLogger.Info("audio unavailable", "name", name, "err", err)
}

// PlaySound 播放音效；空名称或已禁用时什么也不做
func (am *AudioManager) PlaySound(name string) {
	if name == "" || am.missing[name] || !am.SoundEnabled() {
		return
	}
	am.reap()

	player, err := am.resourceManager.LoadSoundEffect(name)
	if err != nil {
		am.warnOnce(name, err)
		return
	}
	player.SetVolume(am.SoundVolume())
	player.Play()
	am.active = append(am.active, player)
}

// reap 关闭已播放完毕的音效播放器
func (am *AudioManager) reap() {
	kept := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			audioLogger.Info("failed to close sound player", "err", err)
		}
	}
	am.active = kept
}

// PlayMusic 播放背景音乐
// 同一时间只播放一首；已经在播放同一首时不重新开始
func (am *AudioManager) PlayMusic(name string) {
	if name == "" || am.missing[name] || !am.MusicEnabled() {
		return
	}
	if am.currentMusicID == name && am.currentMusic != nil {
		if !am.currentMusic.IsPlaying() {
			am.currentMusic.Play()
		}
		return
	}

	am.StopMusic()

	player, err := am.resourceManager.LoadMusic(name)
	if err != nil {
		am.warnOnce(name, err)
		return
	}
	volume := am.MusicVolume()
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		audioLogger.Info("failed to rewind music", "name", name, "err", err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = name
	audioLogger.Info("playing music", "name", name, "volume", volume)
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// MusicPlaying 是否有背景音乐正在播放
func (am *AudioManager) MusicPlaying() bool {
	return am.currentMusic != nil && am.currentMusic.IsPlaying()
}

// CurrentMusic 当前音乐名称
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// MusicVolume 当前音乐音量 (0.0 ~ 1.0)
func (am *AudioManager) MusicVolume() float64 {
	return am.volume(FactMusicVolume, am.defaults.MusicVolume)
}

// SoundVolume 当前音效音量 (0.0 ~ 1.0)
func (am *AudioManager) SoundVolume() float64 {
	return am.volume(FactSoundVolume, am.defaults.SoundVolume)
}

func (am *AudioManager) volume(key string, def float64) float64 {
	if am.facts == nil {
		return def
	}
	return clamp01(am.facts.GameFloat(key, def))
}

// MusicEnabled 音乐开关
func (am *AudioManager) MusicEnabled() bool {
	return am.facts == nil || am.facts.GameInt(FactMusicEnabled, 1) != 0
}

// SoundEnabled 音效开关
func (am *AudioManager) SoundEnabled() bool {
	return am.facts == nil || am.facts.GameInt(FactSoundEnabled, 1) != 0
}

// SetMusicVolume 设置并持久化音乐音量，立即作用于当前音乐
func (am *AudioManager) SetMusicVolume(volume float64) error {
	volume = clamp01(volume)
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(volume)
	}
	if am.facts == nil {
		am.defaults.MusicVolume = volume
		return nil
	}
	return am.facts.SetGame(FactMusicVolume, formatFloat(volume))
}

// SetSoundVolume 设置并持久化音效音量
func (am *AudioManager) SetSoundVolume(volume float64) error {
	volume = clamp01(volume)
	if am.facts == nil {
		am.defaults.SoundVolume = volume
		return nil
	}
	return am.facts.SetGame(FactSoundVolume, formatFloat(volume))
}

// ToggleMusic 切换音乐开关；关闭时立即停止
func (am *AudioManager) ToggleMusic() error {
	on := !am.MusicEnabled()
	if !on {
		am.StopMusic()
	}
	if am.facts == nil {
		return nil
	}
	return am.facts.SetGameInt(FactMusicEnabled, boolInt(on))
}

// ToggleSound 切换音效开关
func (am *AudioManager) ToggleSound() error {
	if am.facts == nil {
		return nil
	}
	return am.facts.SetGameInt(FactSoundEnabled, boolInt(!am.SoundEnabled()))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
