// Package facts 实现三种生命周期的键值事实存储
//
//   - Level：关卡级，切换关卡时清空
//   - Session：会话级，仅在进程重启时丢失
//   - Game：游戏级，通过 gdata 以 YAML 持久化，跨会话保留
//
// gdata 管理器为 nil 时进入降级模式：游戏级事实只保存在内存中。
package facts

import (
	"fmt"
	"strconv"

	"github.com/decker502/lol/pkg/diag"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

var logger = diag.For("Facts")

// 存储路径常量
const (
	gameObject   = "facts"
	gameProperty = "game"
)

// Store 事实存储
type Store struct {
	gm      *gdata.Manager // 可为 nil（降级模式）
	level   map[string]string
	session map[string]string
	game    map[string]string
}

// OpenManager 按应用名打开 gdata 存储
func OpenManager(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata for %q: %w", appName, err)
	}
	return m, nil
}

// New 创建事实存储并加载已持久化的游戏级事实
//
// 加载失败不是致命错误：返回可用的存储和错误，游戏级事实从空开始。
func New(gm *gdata.Manager) (*Store, error) {
	s := &Store{
		gm:      gm,
		level:   map[string]string{},
		session: map[string]string{},
		game:    map[string]string{},
	}
	if err := s.load(); err != nil {
		logger.Urgent("failed to load game facts, starting empty", "err", err)
		return s, err
	}
	return s, nil
}

func (s *Store) load() error {
	if s.gm == nil || !s.gm.ObjectPropExists(gameObject, gameProperty) {
		return nil
	}
	data, err := s.gm.LoadObjectProp(gameObject, gameProperty)
	if err != nil {
		return fmt.Errorf("failed to load game facts: %w", err)
	}
	loaded := map[string]string{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal game facts: %w", err)
	}
	s.game = loaded
	logger.Info("game facts loaded", "count", len(loaded))
	return nil
}

func (s *Store) save() error {
	if s.gm == nil {
		return nil
	}
	data, err := yaml.Marshal(s.game)
	if err != nil {
		return fmt.Errorf("failed to marshal game facts: %w", err)
	}
	if err := s.gm.SaveObjectProp(gameObject, gameProperty, data); err != nil {
		return fmt.Errorf("failed to save game facts: %w", err)
	}
	return nil
}

func lookup(m map[string]string, key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// Level 读取关卡级事实
func (s *Store) Level(key, def string) string { return lookup(s.level, key, def) }

// SetLevel 写入关卡级事实
func (s *Store) SetLevel(key, value string) { s.level[key] = value }

// ClearLevel 清空关卡级事实（切换关卡时调用）
func (s *Store) ClearLevel() {
	for k := range s.level {
		delete(s.level, k)
	}
}

// Session 读取会话级事实
func (s *Store) Session(key, def string) string { return lookup(s.session, key, def) }

// SetSession 写入会话级事实
func (s *Store) SetSession(key, value string) { s.session[key] = value }

// Game 读取游戏级事实
func (s *Store) Game(key, def string) string { return lookup(s.game, key, def) }

// SetGame 写入游戏级事实并立即持久化；持久化失败时内存中的值仍然生效
func (s *Store) SetGame(key, value string) error {
	s.game[key] = value
	if err := s.save(); err != nil {
		logger.Urgent("game fact not persisted", "key", key, "err", err)
		return err
	}
	return nil
}

// GameInt 以整数读取游戏级事实；无法解析时返回 def
func (s *Store) GameInt(key string, def int) int {
	v, ok := s.game[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Info("game fact is not an integer", "key", key, "value", v)
		return def
	}
	return n
}

// SetGameInt 以整数写入游戏级事实
func (s *Store) SetGameInt(key string, value int) error {
	return s.SetGame(key, strconv.Itoa(value))
}

// GameFloat 以浮点读取游戏级事实（音量等设置）
func (s *Store) GameFloat(key string, def float64) float64 {
	v, ok := s.game[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
