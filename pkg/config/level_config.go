package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LevelConfig 数据驱动的关卡描述
// 坐标与尺寸为世界单位（米），y 轴向下
type LevelConfig struct {
	Name        string  `yaml:"name"`        // 关卡名称
	Description string  `yaml:"description"` // 关卡描述（可选）
	Width       float64 `yaml:"width"`       // 世界宽度，默认一屏
	Height      float64 `yaml:"height"`      // 世界高度，默认一屏
	BoundingBox bool    `yaml:"boundingBox"` // 是否用四面墙围住世界
	WallImage   string  `yaml:"wallImage"`

	Gravity    Point       `yaml:"gravity"`
	Background string      `yaml:"background"` // 背景色 "#rrggbb"
	Music      string      `yaml:"music"`
	Tilt       *TiltConfig `yaml:"tilt"` // 为空表示不启用倾斜

	Victory       VictoryConfig `yaml:"victory"`
	LoseCountdown float64       `yaml:"loseCountdown"` // 秒，0 表示不启用
	WinCountdown  float64       `yaml:"winCountdown"`  // 秒，0 表示不启用

	Welcome string `yaml:"welcome"` // 欢迎覆盖层文字，空表示没有
	Win     string `yaml:"win"`     // 胜利覆盖层文字，空表示直接进入下一关
	Lose    string `yaml:"lose"`    // 失败覆盖层文字，空表示直接重玩

	Layers []LayerConfig `yaml:"layers"`
	Actors []ActorConfig `yaml:"actors"`
}

// Point 二维坐标
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TiltConfig 倾斜控制
type TiltConfig struct {
	MaxX       float64 `yaml:"maxX"`
	MaxY       float64 `yaml:"maxY"`
	Multiplier float64 `yaml:"multiplier"` // 默认 1
	Velocity   bool    `yaml:"velocity"`   // true：直接设置 tiltMove 角色的速度
}

// VictoryConfig 胜利条件
type VictoryConfig struct {
	Type    string `yaml:"type"`    // "destination", "goodies", "enemies"
	Count   int    `yaml:"count"`   // destination/enemies 的目标数；enemies 为 -1 表示全部
	Goodies [4]int `yaml:"goodies"` // goodies 的四个阈值
}

// LayerConfig 视差层
type LayerConfig struct {
	Image      string  `yaml:"image"`
	Foreground bool    `yaml:"foreground"`
	Vertical   bool    `yaml:"vertical"`
	Width      float64 `yaml:"width"`  // 瓦片宽
	Height     float64 `yaml:"height"` // 瓦片高
	Ratio      float64 `yaml:"ratio"`  // 相对模式的跟随比例
	Speed      float64 `yaml:"speed"`  // 非 0 时为自动滚动
	Offset     float64 `yaml:"offset"` // 垂直于滚动方向的位置
	Z          int     `yaml:"z"`
}

// RouteConfig 巡游路线
type RouteConfig struct {
	Points []Point `yaml:"points"`
	Speed  float64 `yaml:"speed"`
	Loop   bool    `yaml:"loop"`
}

// ActorConfig 单个角色
type ActorConfig struct {
	Kind   string  `yaml:"kind"` // hero, enemy, goodie, destination, obstacle, decoration
	X      float64 `yaml:"x"`    // 左上角
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Image  string  `yaml:"image"`
	Circle bool    `yaml:"circle"`
	Z      int     `yaml:"z"`

	Route *RouteConfig `yaml:"route"`

	// 英雄
	Strength    int     `yaml:"strength"`
	MustSurvive bool    `yaml:"mustSurvive"`
	Chase       bool    `yaml:"chase"`    // 相机跟随
	TiltMove    bool    `yaml:"tiltMove"` // 受倾斜控制
	Jump        Point   `yaml:"jump"`     // 非零时点击英雄起跳
	Invincible  float64 `yaml:"invincible"`

	// 敌人
	Damage        int  `yaml:"damage"`
	DefeatByJump  bool `yaml:"defeatByJump"`
	DefeatByCrawl bool `yaml:"defeatByCrawl"`

	// 奖励物
	Score *[4]int `yaml:"score"`

	// 目的地
	Capacity int `yaml:"capacity"`

	// 物理
	Moveable   bool `yaml:"moveable"`
	CanFall    bool `yaml:"canFall"`
	NoRotation bool `yaml:"noRotation"`
}

// 合法的角色类型
var validActorKinds = map[string]bool{
	"hero":        true,
	"enemy":       true,
	"goodie":      true,
	"destination": true,
	"obstacle":    true,
	"decoration":  true,
}

// LoadLevelConfig 从YAML文件加载关卡配置
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}
	lc, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return lc, nil
}

// ParseLevelConfig 解析并校验关卡配置，缺省的世界尺寸为一屏
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	applyDefaults(&levelConfig)

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}
	return &levelConfig, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(config *LevelConfig) {
	def := DefaultEngine()
	if config.Width <= 0 {
		config.Width = float64(def.ScreenWidth) / def.PixelsPerMeter
	}
	if config.Height <= 0 {
		config.Height = float64(def.ScreenHeight) / def.PixelsPerMeter
	}
	if config.Victory.Type == "" {
		config.Victory.Type = "destination"
	}
	if config.Victory.Type == "destination" && config.Victory.Count == 0 {
		config.Victory.Count = 1
	}
	if config.Tilt != nil && config.Tilt.Multiplier == 0 {
		config.Tilt.Multiplier = 1
	}
	for i := range config.Actors {
		a := &config.Actors[i]
		if a.W <= 0 {
			a.W = 1
		}
		if a.H <= 0 {
			a.H = 1
		}
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if config.Name == "" {
		return fmt.Errorf("level name is required")
	}

	switch config.Victory.Type {
	case "destination", "goodies":
	case "enemies":
		if config.Victory.Count < -1 {
			return fmt.Errorf("victory count must be -1 (all) or >= 0, got %d", config.Victory.Count)
		}
	default:
		return fmt.Errorf("victory type must be one of: destination, goodies, enemies, got %q", config.Victory.Type)
	}

	if config.LoseCountdown < 0 || config.WinCountdown < 0 {
		return fmt.Errorf("countdowns cannot be negative")
	}

	heroes := 0
	for i, a := range config.Actors {
		if !validActorKinds[a.Kind] {
			return fmt.Errorf("actors[%d]: unknown kind %q", i, a.Kind)
		}
		if a.Kind == "hero" {
			heroes++
		}
		if a.Route != nil {
			if len(a.Route.Points) < 2 {
				return fmt.Errorf("actors[%d]: route needs at least 2 points", i)
			}
			if a.Route.Speed <= 0 {
				return fmt.Errorf("actors[%d]: route speed must be positive", i)
			}
		}
	}
	if heroes == 0 {
		return fmt.Errorf("at least one hero is required")
	}

	for i, l := range config.Layers {
		if l.Width <= 0 || l.Height <= 0 {
			return fmt.Errorf("layers[%d]: tile size must be positive", i)
		}
	}
	return nil
}
