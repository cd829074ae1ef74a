package actors

import "github.com/decker502/lol/pkg/physics"

// Handler 碰撞响应；dom 为优势方，sub 为劣势方
type Handler func(dom, sub *Actor, c physics.Contact)

type pair struct{ dom, sub Kind }

// rank 优势顺序：Hero > Enemy > Projectile > Obstacle > Goodie ≈ Destination
func rank(k Kind) int {
	switch k {
	case KindHero:
		return 0
	case KindEnemy:
		return 1
	case KindProjectile:
		return 2
	case KindObstacle:
		return 3
	case KindGoodie, KindDestination:
		return 4
	default:
		return 5
	}
}

// defaultTable 全部已识别的变体组合；未列出的组合静默忽略
func defaultTable() map[pair]Handler {
	return map[pair]Handler{
		{KindHero, KindEnemy}:          heroEnemy,
		{KindHero, KindDestination}:    heroDestination,
		{KindHero, KindObstacle}:       heroObstacle,
		{KindHero, KindGoodie}:         heroGoodie,
		{KindEnemy, KindObstacle}:      enemyObstacle,
		{KindEnemy, KindProjectile}:    enemyProjectile,
		{KindProjectile, KindObstacle}: projectileObstacle,
		{KindObstacle, KindGoodie}:     obstacleGoodie,
	}
}

// Dispatcher 把物理接触翻译为恰好一次碰撞响应
type Dispatcher struct {
	table map[pair]Handler
}

// NewDispatcher 创建带默认查找表的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{table: defaultTable()}
}

// Handle 替换某个组合的响应，dom 必须是优势方
func (d *Dispatcher) Handle(dom, sub Kind, h Handler) {
	if h == nil {
		delete(d.table, pair{dom, sub})
		return
	}
	d.table[pair{dom, sub}] = h
}

// Covers 组合是否有响应（与参数顺序无关）
func (d *Dispatcher) Covers(a, b Kind) bool {
	dom, sub, ok := order(a, b)
	if !ok {
		return false
	}
	_, ok = d.table[pair{dom, sub}]
	return ok
}

func order(a, b Kind) (Kind, Kind, bool) {
	ra, rb := rank(a), rank(b)
	switch {
	case ra < rb:
		return a, b, true
	case rb < ra:
		return b, a, true
	default:
		return a, b, false
	}
}

// Dispatch 对一次接触调用优势方的响应；返回是否有响应执行
func (d *Dispatcher) Dispatch(a, b *Actor, c physics.Contact) bool {
	if a == nil || b == nil || !a.enabled || !b.enabled {
		return false
	}
	dk, _, ok := order(a.kind, b.kind)
	if !ok {
		return false
	}
	dom, sub := a, b
	if dk != a.kind {
		dom, sub = b, a
	}
	h, ok := d.table[pair{dom.kind, sub.kind}]
	if !ok {
		return false
	}
	h(dom, sub, c)
	return true
}

// OnContact 物理世界的接触回调
func (d *Dispatcher) OnContact(a, b physics.Body, c physics.Contact) {
	d.Dispatch(owner(a), owner(b), c)
}

func owner(b physics.Body) *Actor {
	if b == nil {
		return nil
	}
	a, _ := b.UserData().(*Actor)
	return a
}
