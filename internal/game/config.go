package game

// Config holds every gameplay tuning constant. DefaultConfig returns the
// shipped balance; tests and the headless report override individual fields.
type Config struct {
	// Arena
	ArenaSize float64 // side of the square play area; <= 0 means unbounded

	// Player
	PlayerSpeed           float64
	PlayerRadius          float64
	PlayerMaxHealth       uint32
	PlayerAcceleration    float64 // blend factor per 1/60 s step
	PlayerDeceleration    float64
	PlayerAccelerationCap float64
	PlayerDecelerationCap float64
	PlayerDeadzone        float64
	PlayerKnockback       float64
	CollisionDamage       uint32
	HitScorePenalty       uint32

	// Accuracy stacks
	AccuracyMoveStep   float64 // movement multiplier per stack
	AccuracyMoveCap    float64 // cap on the summed movement bonus
	AccuracyDamageStep float64
	AccuracyMaxStacks  uint32

	// Trail weapon
	TrailSpawnInterval float64
	TrailLifetime      float64
	TrailHitRadius     float64
	TrailBaseDamage    float64

	// Wave weapon
	WaveBlastDuration float64
	WaveCadence       float64
	WaveMinSpeedSq    float64
	WavePerSide       int
	WaveSpeed         float64
	WaveCurve         float64
	WaveDamping       float64 // per 1/60 s step
	WaveLifetime      float64
	WaveDamage        float64
	WaveHitRadius     float64

	// Hostiles
	EnemyBaseSpeed       float64
	EnemySpeedIncrement  float64
	EnemySpeedDivisor    float64
	EnemyBaseHealth      float64
	EnemyHealthDivisor   float64
	EnemyTurnRate        float64
	EnemySpawnStart      float64
	EnemySpawnAccel      float64
	EnemySpawnMin        float64
	EnemySpawnDistance   float64
	EnemySpawnJitter     float64
	EnemyKnockback       float64
	KnockbackDecay       float64 // per second
	KnockbackRestSpeedSq float64

	// Scoring
	BaseScore      uint32
	ComboWindow    float64
	ComboStep      float64
	KillCurrency   uint32
	PickupCurrency uint32

	// Power-ups
	PowerUpLifetime   float64
	PowerUpDropChance float64
	PowerUpWeights    [powerUpKindCount]float64
	ShieldDuration    float64
	HealAmount        uint32

	// Feedback
	HitFreezeDuration float64
	TraumaDecay       float64 // per second
	KillTrauma        float64
	HitTrauma         float64
	PlayerHitTrauma   float64

	// Cosmetic particles
	DeathBurstCount    int
	DeathBurstLifetime float64
	PickupRingCount    int
	PickupRingLifetime float64
	SparkCount         int
	SparkLifetime      float64
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		ArenaSize: 5000,

		PlayerSpeed:           950,
		PlayerRadius:          14,
		PlayerMaxHealth:       4,
		PlayerAcceleration:    0.2,
		PlayerDeceleration:    0.4,
		PlayerAccelerationCap: 0.45,
		PlayerDecelerationCap: 0.65,
		PlayerDeadzone:        5,
		PlayerKnockback:       200,
		CollisionDamage:       1,
		HitScorePenalty:       5,

		AccuracyMoveStep:   0.12,
		AccuracyMoveCap:    0.4,
		AccuracyDamageStep: 0.25,
		AccuracyMaxStacks:  4,

		TrailSpawnInterval: 0.028,
		TrailLifetime:      2.6,
		TrailHitRadius:     16,
		TrailBaseDamage:    3,

		WaveBlastDuration: 10,
		WaveCadence:       0.08,
		WaveMinSpeedSq:    5000,
		WavePerSide:       3,
		WaveSpeed:         500,
		WaveCurve:         400,
		WaveDamping:       0.992,
		WaveLifetime:      2.0,
		WaveDamage:        2,
		WaveHitRadius:     24,

		EnemyBaseSpeed:       180,
		EnemySpeedIncrement:  8,
		EnemySpeedDivisor:    200,
		EnemyBaseHealth:      3,
		EnemyHealthDivisor:   500,
		EnemyTurnRate:        0.18,
		EnemySpawnStart:      2.0,
		EnemySpawnAccel:      0.92,
		EnemySpawnMin:        0.35,
		EnemySpawnDistance:   600,
		EnemySpawnJitter:     100,
		EnemyKnockback:       250,
		KnockbackDecay:       8,
		KnockbackRestSpeedSq: 1,

		BaseScore:      10,
		ComboWindow:    1.0,
		ComboStep:      0.5,
		KillCurrency:   1,
		PickupCurrency: 5,

		PowerUpLifetime:   12,
		PowerUpDropChance: 0.15,
		PowerUpWeights: [powerUpKindCount]float64{
			PowerUpHealth:    0.35,
			PowerUpShield:    0.25,
			PowerUpCurrency:  0.15,
			PowerUpAccuracy:  0.15,
			PowerUpWaveBlast: 0.10,
		},
		ShieldDuration: 4,
		HealAmount:     1,

		HitFreezeDuration: 0.04,
		TraumaDecay:       3,
		KillTrauma:        0.25,
		HitTrauma:         0.1,
		PlayerHitTrauma:   0.5,

		DeathBurstCount:    20,
		DeathBurstLifetime: 0.6,
		PickupRingCount:    12,
		PickupRingLifetime: 0.4,
		SparkCount:         3,
		SparkLifetime:      0.5,
	}
}

// arena derives the play area from ArenaSize.
func (c Config) arena() Arena {
	if c.ArenaSize <= 0 {
		return UnboundedArena()
	}
	return NewArena(c.ArenaSize, c.ArenaSize)
}
