package game

import "math"

// --- Upgrade catalogue ---

// UpgradeKind identifies a permanent upgrade sold in the shop.
type UpgradeKind int

const (
	UpgradeLootMagnet UpgradeKind = iota
	UpgradeMaxHealth
	UpgradeShieldDuration
	UpgradeMovementSpeed
	UpgradeAcceleration
	UpgradeTurnSpeed
	UpgradeTrailDuration
	UpgradeTrailDensity
	UpgradeTrailDamage
	UpgradeEnemyKnockback
	UpgradeScreenShake
	UpgradeComboWindow
	UpgradeColorRed
	UpgradeColorBlue
	UpgradeColorPurple

	upgradeKindCount
)

func (k UpgradeKind) String() string {
	if item, ok := ShopItemFor(k); ok {
		return item.Name
	}
	return "unknown"
}

// UpgradeCategory groups upgrades for shop presentation.
type UpgradeCategory int

const (
	CategoryCombat UpgradeCategory = iota
	CategoryMovement
	CategoryVisual
	CategoryQualityOfLife
)

func (c UpgradeCategory) String() string {
	switch c {
	case CategoryCombat:
		return "combat"
	case CategoryMovement:
		return "movement"
	case CategoryVisual:
		return "visual"
	case CategoryQualityOfLife:
		return "quality_of_life"
	default:
		return "unknown"
	}
}

// CostCurve selects how an upgrade's price grows with its level.
type CostCurve int

const (
	CostQuadratic CostCurve = iota // base * (L+1)^2
	CostLinear                     // base * (L+1)
	CostOffset                     // base * (L+2)
	CostFlat                       // base * Factor, single purchase
)

// ShopItem is one row of the fixed price table.
type ShopItem struct {
	Kind        UpgradeKind
	Name        string
	Description string
	Category    UpgradeCategory
	BaseCost    uint32
	MaxLevel    uint32
	Curve       CostCurve
	Factor      uint32 // CostFlat multiplier
}

// CostAt returns the price of buying level+1.
func (it ShopItem) CostAt(level uint32) uint32 {
	next := level + 1
	switch it.Curve {
	case CostQuadratic:
		return it.BaseCost * next * next
	case CostLinear:
		return it.BaseCost * next
	case CostOffset:
		return it.BaseCost * (next + 1)
	case CostFlat:
		return it.BaseCost * it.Factor
	default:
		return it.BaseCost
	}
}

// ShopItems is the price table, in shop display order.
var ShopItems = [upgradeKindCount]ShopItem{
	{UpgradeLootMagnet, "Loot Magnet", "Increases pickup radius for power-ups", CategoryCombat, 10, 3, CostQuadratic, 0},
	{UpgradeMaxHealth, "Max Health", "Permanently increase max health", CategoryCombat, 10, 5, CostQuadratic, 0},
	{UpgradeShieldDuration, "Shield Duration", "Shield power-ups last longer", CategoryCombat, 10, 3, CostOffset, 0},
	{UpgradeMovementSpeed, "Movement Speed", "Increase base movement speed", CategoryMovement, 10, 3, CostQuadratic, 0},
	{UpgradeAcceleration, "Acceleration", "Snappier acceleration and braking", CategoryMovement, 15, 2, CostLinear, 0},
	{UpgradeTurnSpeed, "Heavy Air", "Hostiles turn more slowly", CategoryMovement, 15, 2, CostLinear, 0},
	{UpgradeTrailDuration, "Trail Duration", "Trail segments last longer", CategoryCombat, 10, 3, CostQuadratic, 0},
	{UpgradeTrailDensity, "Trail Density", "Lay trail segments more often", CategoryCombat, 15, 2, CostLinear, 0},
	{UpgradeTrailDamage, "Trail Damage", "Increase trail damage", CategoryCombat, 10, 2, CostLinear, 0},
	{UpgradeEnemyKnockback, "Enemy Knockback", "Stronger enemy knockback on hit", CategoryCombat, 10, 3, CostLinear, 0},
	{UpgradeScreenShake, "Steady Camera", "Reduce screen shake intensity", CategoryQualityOfLife, 10, 2, CostLinear, 0},
	{UpgradeComboWindow, "Combo Window", "Longer combo timing window", CategoryQualityOfLife, 15, 2, CostLinear, 0},
	{UpgradeColorRed, "Red Color", "Unlock red player color", CategoryVisual, 10, 1, CostFlat, 1},
	{UpgradeColorBlue, "Blue Color", "Unlock blue player color", CategoryVisual, 10, 1, CostFlat, 2},
	{UpgradeColorPurple, "Purple Color", "Unlock purple player color", CategoryVisual, 10, 1, CostFlat, 3},
}

// ShopItemFor looks up the price table row for kind.
func ShopItemFor(kind UpgradeKind) (ShopItem, bool) {
	if kind < 0 || kind >= upgradeKindCount {
		return ShopItem{}, false
	}
	return ShopItems[kind], true
}

// --- Cosmetics ---

// PlayerColor is an unlockable cosmetic tint.
type PlayerColor string

const (
	ColorDefault PlayerColor = "default"
	ColorRed     PlayerColor = "red"
	ColorBlue    PlayerColor = "blue"
	ColorPurple  PlayerColor = "purple"
)

func colorForUpgrade(kind UpgradeKind) (PlayerColor, bool) {
	switch kind {
	case UpgradeColorRed:
		return ColorRed, true
	case UpgradeColorBlue:
		return ColorBlue, true
	case UpgradeColorPurple:
		return ColorPurple, true
	default:
		return "", false
	}
}

// --- Persisted levels ---

// UpgradeLevels is the persisted purchase record. Field tags define the
// on-disk layout of the "upgrades" object.
type UpgradeLevels struct {
	LootMagnet     uint32        `json:"loot_magnet_level" msgpack:"loot_magnet_level" jsonschema:"minimum=0,maximum=3"`
	MaxHealth      uint32        `json:"max_health_level" msgpack:"max_health_level" jsonschema:"minimum=0,maximum=5"`
	ShieldDuration uint32        `json:"shield_duration_level" msgpack:"shield_duration_level" jsonschema:"minimum=0,maximum=3"`
	MovementSpeed  uint32        `json:"movement_speed_level" msgpack:"movement_speed_level" jsonschema:"minimum=0,maximum=3"`
	Acceleration   uint32        `json:"acceleration_level" msgpack:"acceleration_level" jsonschema:"minimum=0,maximum=2"`
	TurnSpeed      uint32        `json:"turn_speed_level" msgpack:"turn_speed_level" jsonschema:"minimum=0,maximum=2"`
	TrailDuration  uint32        `json:"trail_duration_level" msgpack:"trail_duration_level" jsonschema:"minimum=0,maximum=3"`
	TrailDensity   uint32        `json:"trail_density_level" msgpack:"trail_density_level" jsonschema:"minimum=0,maximum=2"`
	TrailDamage    uint32        `json:"trail_damage_level" msgpack:"trail_damage_level" jsonschema:"minimum=0,maximum=2"`
	EnemyKnockback uint32        `json:"enemy_knockback_level" msgpack:"enemy_knockback_level" jsonschema:"minimum=0,maximum=3"`
	ScreenShake    uint32        `json:"screen_shake_level" msgpack:"screen_shake_level" jsonschema:"minimum=0,maximum=2"`
	ComboWindow    uint32        `json:"combo_window_level" msgpack:"combo_window_level" jsonschema:"minimum=0,maximum=2"`
	UnlockedColors []PlayerColor `json:"unlocked_colors" msgpack:"unlocked_colors" jsonschema:"enum=default,enum=red,enum=blue,enum=purple"`
	SelectedColor  PlayerColor   `json:"selected_color" msgpack:"selected_color" jsonschema:"enum=default,enum=red,enum=blue,enum=purple"`
}

// DefaultUpgradeLevels is a fresh profile: nothing bought, default colour.
func DefaultUpgradeLevels() UpgradeLevels {
	return UpgradeLevels{
		UnlockedColors: []PlayerColor{ColorDefault},
		SelectedColor:  ColorDefault,
	}
}

func (u *UpgradeLevels) levelPtr(kind UpgradeKind) *uint32 {
	switch kind {
	case UpgradeLootMagnet:
		return &u.LootMagnet
	case UpgradeMaxHealth:
		return &u.MaxHealth
	case UpgradeShieldDuration:
		return &u.ShieldDuration
	case UpgradeMovementSpeed:
		return &u.MovementSpeed
	case UpgradeAcceleration:
		return &u.Acceleration
	case UpgradeTurnSpeed:
		return &u.TurnSpeed
	case UpgradeTrailDuration:
		return &u.TrailDuration
	case UpgradeTrailDensity:
		return &u.TrailDensity
	case UpgradeTrailDamage:
		return &u.TrailDamage
	case UpgradeEnemyKnockback:
		return &u.EnemyKnockback
	case UpgradeScreenShake:
		return &u.ScreenShake
	case UpgradeComboWindow:
		return &u.ComboWindow
	default:
		return nil
	}
}

// Level returns the purchased level of kind. Colours report 1 once unlocked.
func (u UpgradeLevels) Level(kind UpgradeKind) uint32 {
	if c, ok := colorForUpgrade(kind); ok {
		if u.HasColor(c) {
			return 1
		}
		return 0
	}
	if p := u.levelPtr(kind); p != nil {
		return *p
	}
	return 0
}

// HasColor reports whether c is unlocked.
func (u UpgradeLevels) HasColor(c PlayerColor) bool {
	for _, have := range u.UnlockedColors {
		if have == c {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (u UpgradeLevels) Clone() UpgradeLevels {
	out := u
	out.UnlockedColors = append([]PlayerColor(nil), u.UnlockedColors...)
	return out
}

// Normalize repairs loaded data: levels are clamped to the table maximum, the
// default colour is always unlocked, duplicate or unknown colours are dropped
// and the selection falls back to default when it is not unlocked.
func (u UpgradeLevels) Normalize() UpgradeLevels {
	out := u.Clone()
	for kind := UpgradeKind(0); kind < upgradeKindCount; kind++ {
		if p := out.levelPtr(kind); p != nil && *p > ShopItems[kind].MaxLevel {
			*p = ShopItems[kind].MaxLevel
		}
	}
	colors := []PlayerColor{ColorDefault}
	for _, c := range u.UnlockedColors {
		switch c {
		case ColorRed, ColorBlue, ColorPurple:
		default:
			continue
		}
		dup := false
		for _, have := range colors {
			if have == c {
				dup = true
				break
			}
		}
		if !dup {
			colors = append(colors, c)
		}
	}
	out.UnlockedColors = colors
	if !out.HasColor(out.SelectedColor) {
		out.SelectedColor = ColorDefault
	}
	return out
}

// --- Ledger ---

// PurchaseResult is the outcome of a shop purchase attempt.
type PurchaseResult int

const (
	PurchaseOK PurchaseResult = iota
	PurchaseMaxed
	PurchaseInsufficientFunds
	PurchaseUnknown
)

func (r PurchaseResult) String() string {
	switch r {
	case PurchaseOK:
		return "ok"
	case PurchaseMaxed:
		return "maxed"
	case PurchaseInsufficientFunds:
		return "insufficient_funds"
	case PurchaseUnknown:
		return "unknown_item"
	default:
		return "invalid"
	}
}

// Ledger owns the persistent currency balance and purchased upgrade levels.
// Mutations set dirty flags that the sim drains to persist only on change.
type Ledger struct {
	balance uint32
	levels  UpgradeLevels

	currencyDirty bool
	upgradesDirty bool
}

// NewLedger builds a ledger from loaded state.
func NewLedger(balance uint32, levels UpgradeLevels) *Ledger {
	return &Ledger{balance: balance, levels: levels.Normalize()}
}

func (l *Ledger) Balance() uint32 { return l.balance }

// Levels returns a copy of the purchase record.
func (l *Ledger) Levels() UpgradeLevels { return l.levels.Clone() }

func (l *Ledger) Level(kind UpgradeKind) uint32 { return l.levels.Level(kind) }

// Credit adds currency, saturating at the uint32 maximum.
func (l *Ledger) Credit(amount uint32) {
	if amount == 0 {
		return
	}
	if l.balance > math.MaxUint32-amount {
		l.balance = math.MaxUint32
	} else {
		l.balance += amount
	}
	l.currencyDirty = true
}

// Spend debits amount if the balance covers it. It never partially debits.
func (l *Ledger) Spend(amount uint32) bool {
	if l.balance < amount {
		return false
	}
	if amount == 0 {
		return true
	}
	l.balance -= amount
	l.currencyDirty = true
	return true
}

// IsMaxed reports whether kind cannot be bought again.
func (l *Ledger) IsMaxed(kind UpgradeKind) bool {
	item, ok := ShopItemFor(kind)
	if !ok {
		return true
	}
	return l.levels.Level(kind) >= item.MaxLevel
}

// Cost is the price of the next level of kind.
func (l *Ledger) Cost(kind UpgradeKind) uint32 {
	item, ok := ShopItemFor(kind)
	if !ok {
		return 0
	}
	return item.CostAt(l.levels.Level(kind))
}

// Purchase attempts to buy one level of kind. The debit and the level
// increment happen together or not at all.
func (l *Ledger) Purchase(kind UpgradeKind) PurchaseResult {
	item, ok := ShopItemFor(kind)
	if !ok {
		return PurchaseUnknown
	}
	level := l.levels.Level(kind)
	if level >= item.MaxLevel {
		return PurchaseMaxed
	}
	if !l.Spend(item.CostAt(level)) {
		return PurchaseInsufficientFunds
	}
	if c, isColor := colorForUpgrade(kind); isColor {
		l.levels.UnlockedColors = append(l.levels.UnlockedColors, c)
		l.levels.SelectedColor = c
	} else {
		*l.levels.levelPtr(kind) = level + 1
	}
	l.upgradesDirty = true
	return PurchaseOK
}

// SelectColor switches the cosmetic tint if it is unlocked.
func (l *Ledger) SelectColor(c PlayerColor) bool {
	if !l.levels.HasColor(c) {
		return false
	}
	if l.levels.SelectedColor != c {
		l.levels.SelectedColor = c
		l.upgradesDirty = true
	}
	return true
}

// takeDirty returns and clears the pending-save flags.
func (l *Ledger) takeDirty() (currency, upgrades bool) {
	currency, upgrades = l.currencyDirty, l.upgradesDirty
	l.currencyDirty, l.upgradesDirty = false, false
	return currency, upgrades
}

// --- Derived multipliers ---
// These read the current levels on every call so a purchase takes effect on
// the next use.

func (l *Ledger) MovementSpeedMultiplier() float64 {
	return 1 + 0.1*float64(l.levels.MovementSpeed)
}

func (l *Ledger) AccelerationMultiplier() float64 {
	return 1 + 0.25*float64(l.levels.Acceleration)
}

func (l *Ledger) MaxHealthBonus() uint32 { return l.levels.MaxHealth }

func (l *Ledger) TrailDamageMultiplier() float64 {
	return 1 + 0.25*float64(l.levels.TrailDamage)
}

func (l *Ledger) TrailLifetimeMultiplier() float64 {
	return 1 + 0.25*float64(l.levels.TrailDuration)
}

// TrailDensityMultiplier divides the trail spawn interval.
func (l *Ledger) TrailDensityMultiplier() float64 {
	return 1 + 0.5*float64(l.levels.TrailDensity)
}

// ShieldDurationBonus is extra shield seconds.
func (l *Ledger) ShieldDurationBonus() float64 {
	return float64(l.levels.ShieldDuration)
}

func (l *Ledger) KnockbackMultiplier() float64 {
	return 1 + 0.5*float64(l.levels.EnemyKnockback)
}

func (l *Ledger) PickupRadiusMultiplier() float64 {
	return 1 + 0.5*float64(l.levels.LootMagnet)
}

// TurnRateMultiplier scales hostile steering (lower is slower turning).
func (l *Ledger) TurnRateMultiplier() float64 {
	return 1 - 0.15*float64(l.levels.TurnSpeed)
}

func (l *Ledger) ShakeMultiplier() float64 {
	return 1 - 0.2*float64(l.levels.ScreenShake)
}

// ComboWindowBonus is extra combo window seconds.
func (l *Ledger) ComboWindowBonus() float64 {
	return 0.5 * float64(l.levels.ComboWindow)
}
