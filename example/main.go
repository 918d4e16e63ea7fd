package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/application/services/maintenance"
	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/services"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
	"github.com/vsinha/mekparts/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Stock the warehouse with one spare hip for a 50 ton mek
	warehouse := memory.NewWarehouse()
	hip, err := entities.NewPart(entities.MekActuator, entities.Definition{Subtype: "Hip"})
	if err != nil {
		fmt.Printf("❌ Failed to build spare: %v\n", err)
		return
	}
	hip.SetUnitTonnage(50)
	if _, err := warehouse.AddPart(hip); err != nil {
		fmt.Printf("❌ Failed to stock warehouse: %v\n", err)
		return
	}

	svc := maintenance.NewService(warehouse, services.NewRandomRoller(42))

	mek := simulation.NewMek(simulation.MekConfig{
		Name:         "Hunchback HBK-4G",
		Tonnage:      50,
		EngineRating: 200,
		EngineType:   "Standard",
		ArmorType:    "Standard",
	})
	unit, err := entities.NewUnit(uuid.New(), mek.Name(), mek)
	if err != nil {
		fmt.Printf("❌ Failed to build unit: %v\n", err)
		return
	}
	if err := svc.InitializeUnit(unit); err != nil {
		fmt.Printf("❌ Failed to initialize unit: %v\n", err)
		return
	}
	fmt.Printf("🤖 %s enters the bay with %d parts\n", unit.Name, len(unit.Parts()))

	// A bad landing wrecks the right hip and strips the leg armor
	for _, d := range []simulation.Damage{
		{Target: simulation.TargetSystem, Location: simulation.MekRightLeg, System: simulation.SystemHip, Amount: 1},
		{Target: simulation.TargetArmor, Location: simulation.MekRightLeg, Amount: 6},
	} {
		if err := simulation.Apply(mek, d); err != nil {
			fmt.Printf("❌ Damage failed: %v\n", err)
			return
		}
	}
	svc.DamageTick()

	for _, p := range unit.Parts() {
		if _, err := svc.UpdateConditionFromEntity(ctx, p, false); err != nil {
			fmt.Printf("❌ Condition update failed: %v\n", err)
			return
		}
	}

	// The wrecked hip comes out so the spare can go in
	for _, p := range unit.Parts() {
		if p.Kind == entities.MekActuator && p.Subtype == "Hip" && p.MainLocation() == simulation.MekRightLeg {
			outcome, err := svc.Remove(ctx, p, false)
			if err != nil {
				fmt.Printf("❌ Removal failed: %v\n", err)
				return
			}
			fmt.Printf("🔧 Removed %s: %s\n", p.Describe(), outcome.Status)
			break
		}
	}

	fmt.Println("📋 Open tasks:")
	for _, task := range svc.Tasks(unit) {
		fmt.Printf("  - %s (%d min)\n", task.Name, task.BaseTime)
	}

	report, err := svc.Run(ctx, unit)
	if err != nil {
		fmt.Printf("❌ Maintenance failed: %v\n", err)
		return
	}

	fmt.Printf("📊 Maintenance finished in %d passes: %d repaired, %d blocked\n",
		report.Passes, report.Repaired, report.Blocked)
	for _, e := range report.Entries {
		fmt.Printf("  %-20s %-10s %s\n", e.Slot, e.Status, e.Reason)
	}
	fmt.Printf("💰 Warehouse value: %s C-bills\n", svc.WarehouseReport().TotalValue.StringFixed(0))
}
