package trait

// EgoID identifies an ego template. The empty value means "no ego".
// Ego definitions live in content; the constants below are the ids the
// enchantment rules refer to by name.
type EgoID string

// NoEgo is the absent ego.
const NoEgo EgoID = ""

// Body armor egos.
const (
	EgoResistance  EgoID = "resistance"
	EgoElvenkind   EgoID = "elvenkind"
	EgoPermanence  EgoID = "permanence"
	EgoTwilight    EgoID = "twilight"
	EgoDwarven     EgoID = "dwarven"
	EgoDruid       EgoID = "druid"
	EgoArmorDemon  EgoID = "armor_demon"
	EgoArmorMorgul EgoID = "armor_morgul"
)

// Shield egos.
const (
	EgoShieldDwarven EgoID = "shield_dwarven"
	EgoEndurance     EgoID = "endurance"
	EgoReflection    EgoID = "reflection"
)

// Head egos. Helms and crowns share the head slot but accept different subsets.
const (
	EgoBrilliance   EgoID = "brilliance"
	EgoDark         EgoID = "dark"
	EgoInfravision  EgoID = "infravision"
	EgoHProtection  EgoID = "helm_protection"
	EgoSeeing       EgoID = "seeing"
	EgoLight        EgoID = "light"
	EgoHelmDemon    EgoID = "helm_demon"
	EgoTelepathy    EgoID = "telepathy"
	EgoMagi         EgoID = "magi"
	EgoMight        EgoID = "might"
	EgoRegeneration EgoID = "regeneration"
	EgoLordliness   EgoID = "lordliness"
	EgoBasilisk     EgoID = "basilisk"
	EgoAncientCurse EgoID = "ancient_curse"
)

// Feet, hands and outer egos.
const (
	EgoSlowDescent EgoID = "slow_descent"
	EgoSpeed       EgoID = "speed"
	EgoBat         EgoID = "bat"
	EgoNazgul      EgoID = "nazgul"
)

// Weapon egos.
const (
	EgoHolyAvenger   EgoID = "holy_avenger"
	EgoDefender      EgoID = "defender"
	EgoKillDragon    EgoID = "kill_dragon"
	EgoWestNorth     EgoID = "westernesse"
	EgoSlayingWeapon EgoID = "slaying_weapon"
	EgoTrump         EgoID = "trump"
	EgoPattern       EgoID = "pattern"
	EgoSharpness     EgoID = "sharpness"
	EgoEarthquakes   EgoID = "earthquakes"
	EgoVampiric      EgoID = "vampiric"
	EgoDemon         EgoID = "demon"
	EgoAttacks       EgoID = "attacks"
	EgoWeird         EgoID = "weird"
	EgoMorgul        EgoID = "morgul"
	EgoDigging       EgoID = "digging"
)

// Ammo egos.
const (
	EgoSlayingBolt EgoID = "slaying_bolt"
)
