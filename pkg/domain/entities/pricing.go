package entities

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// C-bill cost per ton of unit weight by actuator joint
var actuatorCost = map[simulation.System]int64{
	simulation.SystemShoulder: 100,
	simulation.SystemUpperArm: 100,
	simulation.SystemLowerArm: 50,
	simulation.SystemHand:     80,
	simulation.SystemHip:      150,
	simulation.SystemUpperLeg: 150,
	simulation.SystemLowerLeg: 80,
	simulation.SystemFoot:     120,
}

// Armor cost per ton and points per ton by armor type
var armorTable = map[string]struct {
	costPerTon   int64
	pointsPerTon decimal.Decimal
}{
	"Standard":       {10000, decimal.NewFromInt(16)},
	"Ferro-Fibrous":  {20000, decimal.RequireFromString("17.92")},
	"Light Ferro":    {15000, decimal.RequireFromString("16.96")},
	"Heavy Ferro":    {25000, decimal.RequireFromString("19.84")},
	"Stealth":        {50000, decimal.NewFromInt(16)},
	"Hardened":       {15000, decimal.NewFromInt(8)},
	"Reactive":       {30000, decimal.NewFromInt(14)},
	"Reflective":     {30000, decimal.NewFromInt(16)},
	"Ferro-Lamellor": {35000, decimal.RequireFromString("14.08")},
}

// Engine cost multiplier over a standard fusion engine
var engineCost = map[string]int64{
	"Standard": 5000,
	"Compact":  10000,
	"Light":    15000,
	"XL":       20000,
	"XXL":      100000,
	"ICE":      1250,
}

// Gyro tonnage multiplier per 100 engine rating
var gyroWeight = map[string]decimal.Decimal{
	"Standard":   decimal.NewFromInt(1),
	"XL":         decimal.RequireFromString("0.5"),
	"Compact":    decimal.RequireFromString("1.5"),
	"Heavy Duty": decimal.NewFromInt(2),
}

var cockpitCost = map[string]int64{
	"Standard":   200000,
	"Small":      175000,
	"Command":    500000,
	"Torso":      750000,
	"Industrial": 100000,
}

// GyroWeight returns the tonnage of a gyro for an engine rating
func GyroWeight(gyroType string, rating int) decimal.Decimal {
	mult, ok := gyroWeight[gyroType]
	if !ok {
		mult = decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64((rating + 99) / 100)).Mul(mult).Ceil()
}

// ArmorPointCost returns the C-bill cost of one point of the armor type
func ArmorPointCost(armorType string) decimal.Decimal {
	row, ok := armorTable[armorType]
	if !ok {
		row = armorTable["Standard"]
	}
	return decimal.NewFromInt(row.costPerTon).Div(row.pointsPerTon).Round(2)
}

// ArmorPoints returns the armor points the record represents: the stack
// size for spares and the points left in the location when installed
func (p *Part) ArmorPoints() int {
	if !p.IsInstalled() {
		return p.quantity
	}
	return max(0, p.Capacity-p.hits)
}

// StickerPrice returns the undamaged C-bill price of one unit of the part
func (p *Part) StickerPrice() decimal.Decimal {
	tonnage := decimal.NewFromInt(int64(p.unitTonnage))
	switch p.Kind {
	case MekActuator:
		sys, _ := simulation.ParseSystem(p.Subtype)
		return decimal.NewFromInt(actuatorCost[sys]).Mul(tonnage)
	case MekLocation:
		perTon := int64(400)
		if p.Subtype == "Endo Steel" {
			perTon = 1600
		}
		price := decimal.NewFromInt(perTon).Mul(tonnage)
		if p.TSM {
			price = price.Add(decimal.NewFromInt(16000).Mul(tonnage))
		}
		return price
	case Armor:
		return ArmorPointCost(p.Subtype)
	case Engine:
		perRating, ok := engineCost[p.Model]
		if !ok {
			perRating = engineCost["Standard"]
		}
		price := decimal.NewFromInt(perRating).
			Mul(decimal.NewFromInt(int64(p.Rating))).
			Mul(tonnage).
			Div(decimal.NewFromInt(75))
		return price.Round(0)
	case MekGyro:
		mult := int64(1)
		if p.Model == "Heavy Duty" || p.Model == "Compact" {
			mult = 4
		} else if p.Model == "XL" {
			mult = 2
		}
		return decimal.NewFromInt(300000 * mult).Mul(decimal.NewFromInt(int64((p.Rating + 99) / 100)))
	case MekSensor:
		return decimal.NewFromInt(2000).Mul(tonnage)
	case MekLifeSupport:
		return decimal.NewFromInt(50000)
	case MekCockpit:
		if c, ok := cockpitCost[p.Model]; ok {
			return decimal.NewFromInt(c)
		}
		return decimal.NewFromInt(cockpitCost["Standard"])
	case HeatSink, AeroHeatSink:
		if p.Model == "Double" {
			return decimal.NewFromInt(6000)
		}
		return decimal.NewFromInt(2000)
	case JumpJet:
		perTon := int64(200)
		if p.Model == "Improved" {
			perTon = 500
		}
		return decimal.NewFromInt(perTon).Mul(tonnage)
	case Equipment, AmmoBin:
		return p.Price
	case Turret:
		return decimal.NewFromInt(5000).Mul(p.Weight)
	case Rotor:
		return decimal.NewFromInt(40000).Mul(decimal.NewFromInt(int64(max(1, (p.unitTonnage+9)/10))))
	case VeeSensor:
		return decimal.NewFromInt(5000)
	case Avionics:
		if p.LargeCraft {
			return decimal.NewFromInt(100000)
		}
		return decimal.NewFromInt(60000)
	case FireControlSystem:
		return decimal.NewFromInt(100000)
	case AeroSensor:
		if p.LargeCraft {
			return decimal.NewFromInt(320000)
		}
		return decimal.NewFromInt(80000)
	case StructuralIntegrity:
		return decimal.NewFromInt(50000).Mul(decimal.NewFromInt(int64(p.Capacity)))
	case LandingGear:
		return decimal.NewFromInt(10).Mul(tonnage).Mul(decimal.NewFromInt(10))
	case ProtomekActuator:
		if p.Subtype == LimbLegs {
			return decimal.NewFromInt(540).Mul(tonnage)
		}
		return decimal.NewFromInt(180).Mul(tonnage)
	case ProtomekSensor:
		return decimal.NewFromInt(2000).Mul(tonnage)
	default:
		return decimal.Zero
	}
}

// Value returns the actual worth of the record: sticker price times
// quantity, halved when damaged, zero when missing
func (p *Part) Value() decimal.Decimal {
	if p.IsMissing() {
		return decimal.Zero
	}
	count := p.Quantity()
	if p.Kind == Armor {
		count = p.ArmorPoints()
	}
	value := p.StickerPrice().Mul(decimal.NewFromInt(int64(count)))
	if p.Kind != Armor && p.hits > 0 {
		value = value.Div(decimal.NewFromInt(2))
	}
	return value
}
