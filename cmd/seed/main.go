package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"minemarket/internal/database"
	"minemarket/internal/domain"
	"minemarket/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "minemarket.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (child tables first to avoid FK errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"messages", "offers", "machine_maintenance", "machine_purchases",
		"machine_rentals", "heavy_machines", "attachments", "minerals",
		"mines", "uploads", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	mines := repository.NewMineRepository(db)
	minerals := repository.NewMineralRepository(db)
	machines := repository.NewMachineRepository(db)
	offers := repository.NewOfferRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	createUser(ctx, users, "admin@minemarket.co.za", "admin123", "Sipho", "Ndlovu", domain.RoleAdmin)
	log.Println("Admin created: admin@minemarket.co.za / admin123")

	owner1 := createUser(ctx, users, "thandi@karoomining.co.za", "owner123", "Thandi", "Mokoena", domain.RoleMineOwner)
	owner2 := createUser(ctx, users, "pieter@witbankcoal.co.za", "owner123", "Pieter", "van der Merwe", domain.RoleMineOwner)
	investor1 := createUser(ctx, users, "lerato@capinvest.com", "invest123", "Lerato", "Dlamini", domain.RoleInvestor)
	investor2 := createUser(ctx, users, "james@orefund.io", "invest123", "James", "Okafor", domain.RoleInvestor)
	manager := createUser(ctx, users, "fleet@minemarket.co.za", "fleet123", "Anele", "Khumalo", domain.RoleMineralManager)

	// ================== MINES ==================
	log.Println("Creating mines...")
	mineRows := []domain.Mine{
		{OwnerID: owner1.ID, Name: "Karoo Gold Prospect", Location: "Northern Cape", CommodityType: "gold", Status: domain.MineExploration, Price: 2500000, Description: "Early-stage gold prospect with drill results."},
		{OwnerID: owner1.ID, Name: "Springbok Copper Pit", Location: "Namaqualand", CommodityType: "copper", Status: domain.MineActive, Price: 7800000},
		{OwnerID: owner2.ID, Name: "Witbank Coal Seam 4", Location: "Mpumalanga", CommodityType: "coal", Status: domain.MineActive, Price: 12400000, Description: "Operating seam with rail access."},
		{OwnerID: owner2.ID, Name: "Limpopo Chrome Claim", Location: "Limpopo", CommodityType: "chrome", Status: domain.MineIdle, Price: 3100000},
	}
	for i := range mineRows {
		if err := mines.Create(ctx, &mineRows[i]); err != nil {
			log.Fatal("mine seed failed:", err)
		}
	}

	// ================== MINERALS ==================
	log.Println("Creating minerals...")
	mineralRows := []domain.Mineral{
		{CreatedBy: owner1.ID, Name: "Copper Concentrate 28%", MineralType: domain.MineralMetallic, Grade: "28% Cu", Form: "concentrate", MinOrder: 20, MaxOrder: 500, PricePerUnit: 1850, Currency: "USD", Location: "Namaqualand"},
		{CreatedBy: owner2.ID, Name: "Thermal Coal RB1", MineralType: domain.MineralEnergy, Grade: "6000 kcal/kg", Form: "bulk", MinOrder: 1000, MaxOrder: 50000, PricePerUnit: 95, Currency: "USD", Location: "Richards Bay"},
		{CreatedBy: owner1.ID, Name: "Rough Diamonds Parcel", MineralType: domain.MineralGemstone, Grade: "gem quality", Form: "rough", PricePerUnit: 420000, Currency: "ZAR", Location: "Kimberley"},
	}
	for i := range mineralRows {
		if err := minerals.Create(ctx, &mineralRows[i]); err != nil {
			log.Fatal("mineral seed failed:", err)
		}
	}

	// ================== MACHINES ==================
	log.Println("Creating machines...")
	machineRows := []domain.Machine{
		{OwnerID: manager.ID, Name: "CAT 390F Excavator", Category: "excavator", Brand: "Caterpillar", Model: "390F", Year: 2019, PurchasePrice: 5400000, RentalPricePerDay: 18500, SerialNumber: "CAT390F-0042", Location: "Johannesburg Depot", Status: domain.MachineAvailable},
		{OwnerID: manager.ID, Name: "Komatsu D375 Dozer", Category: "bulldozer", Brand: "Komatsu", Model: "D375A", Year: 2021, PurchasePrice: 7200000, RentalPricePerDay: 22000, SerialNumber: "KMD375-1187", Location: "Witbank Yard", Status: domain.MachineAvailable},
		{OwnerID: manager.ID, Name: "Bell B45E Dump Truck", Category: "dump-truck", Brand: "Bell", Model: "B45E", Year: 2018, PurchasePrice: 4100000, RentalPricePerDay: 14000, Location: "Rustenburg", Status: domain.MachineMaintenance},
	}
	for i := range machineRows {
		if err := machines.Create(ctx, &machineRows[i]); err != nil {
			log.Fatal("machine seed failed:", err)
		}
	}

	// ================== OFFERS ==================
	log.Println("Creating offers...")
	offerRows := []domain.Offer{
		{MineID: mineRows[0].ID, InvestorID: investor1.ID, Amount: 1200000, Message: "Interested in a 40% stake."},
		{MineID: mineRows[0].ID, InvestorID: investor2.ID, Amount: 1500000},
		{MineID: mineRows[2].ID, InvestorID: investor1.ID, Amount: 6000000, Message: "Subject to due diligence."},
	}
	for i := range offerRows {
		if err := offers.Create(ctx, &offerRows[i]); err != nil {
			log.Fatal("offer seed failed:", err)
		}
	}

	log.Printf("Done: %d users, %d mines, %d minerals, %d machines, %d offers",
		6, len(mineRows), len(mineralRows), len(machineRows), len(offerRows))
}

func createUser(ctx context.Context, repo *repository.UserRepository, email, password, first, last string, role domain.UserRole) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   true,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal(fmt.Sprintf("user seed failed (%s):", email), err)
	}
	return u
}
