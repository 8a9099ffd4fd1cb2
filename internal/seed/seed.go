package seed

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/hash"
	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/security"
)

// Run loads the initial catalog, delivery options and accounts into an
// empty database. A database that already holds products is left alone.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := Products()
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	options := DeliveryOptions()
	if err := db.Create(&options).Error; err != nil {
		return fmt.Errorf("seed delivery options: %w", err)
	}

	accounts, carts, err := Accounts(products)
	if err != nil {
		return err
	}
	if err := db.Create(&accounts).Error; err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if len(carts) > 0 {
		if err := db.Create(&carts).Error; err != nil {
			return fmt.Errorf("seed carts: %w", err)
		}
	}
	return nil
}

func DeliveryOptions() []models.DeliveryOption {
	return []models.DeliveryOption{
		{ID: "standard", NameKey: "standardDelivery", Cost: 5.00, Duration: "1-2 business days"},
		{ID: "express", NameKey: "expressDelivery", Cost: 15.00, Duration: "Next business day"},
	}
}

// Accounts returns the demo accounts with bcrypt-hashed credentials; the
// second account starts with a prefilled persisted cart.
func Accounts(products []models.Product) ([]models.UserAccount, []models.CartLine, error) {
	hashed := func(pw string) (string, error) { return hash.HashPassword(pw) }

	johnHash, err := hashed("password123")
	if err != nil {
		return nil, nil, err
	}
	janeHash, err := hashed("test")
	if err != nil {
		return nil, nil, err
	}
	adminHash, err := hashed("password123")
	if err != nil {
		return nil, nil, err
	}

	accounts := []models.UserAccount{
		{
			ID:           "user1",
			Email:        "customer@example.com",
			PasswordHash: johnHash,
			Name:         "John Doe",
			CompanyName:  "Doe Logistics",
			TaxNumber:    "SK2020202020",
		},
		{
			ID:           "user2",
			Email:        "test@packwise.com",
			PasswordHash: janeHash,
			Name:         "Jane Smith",
		},
		{
			ID:           "admin-user",
			Email:        "admin@example.com",
			PasswordHash: adminHash,
			Name:         "Main Admin",
			CompanyName:  "Packwise Corp",
			IsAdmin:      true,
		},
	}

	var carts []models.CartLine
	if len(products) > 3 {
		p := products[3]
		carts = append(carts, models.CartLine{
			OwnerID:   "user2",
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Images:    p.Images,
			Quantity:  2,
		})
	}
	return accounts, carts, nil
}

// Products returns the packaging catalog. Serial numbers follow the
// original stock-control scheme; ids are freshly generated per process.
func Products() []models.Product {
	p := func(serial, sku, category string, name, desc models.LocalizedText, dims, weight, material string, price float64, qty, minStock, maxStock int, supplier, supplierCode, image string) models.Product {
		return models.Product{
			ID:           security.GenerateID("PKWS-", 8),
			LabelCode:    security.GenerateID("GRSM-", 5),
			SerialNumber: serial,
			SKU:          sku,
			CategoryKey:  category,
			Name:         name,
			Description:  desc,
			Dimensions:   dims,
			Weight:       weight,
			Material:     material,
			Price:        price,
			Quantity:     qty,
			MinStock:     minStock,
			MaxStock:     maxStock,
			Supplier:     supplier,
			SupplierCode: supplierCode,
			IsActive:     true,
			Images:       models.StringList{image},
		}
	}

	return []models.Product{
		p("PKWS-EN-001", "CARD-BOX-SM-001", "packing",
			models.LocalizedText{"en": "Small Cardboard Box", "sk": "Malá kartónová krabica", "hu": "Kis karton doboz"},
			models.LocalizedText{"en": "High-quality corrugated cardboard box perfect for small items shipping and storage.", "sk": "Vysokokvalitná vlnitá kartónová krabica ideálna na zasielanie a skladovanie malých predmetov.", "hu": "Kiváló minőségű hullámpapír doboz, tökéletes kis tárgyak szállításához és tárolásához."},
			"20x15x10 cm", "0.15 kg", "Corrugated Cardboard", 1.50, 500, 50, 1000,
			"CardBoard Solutions Ltd.", "CBS-001",
			"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=300&fit=crop"),
		p("PKWS-EN-002", "CARD-BOX-MD-002", "packing",
			models.LocalizedText{"en": "Medium Cardboard Box", "sk": "Stredná kartónová krabica", "hu": "Közepes karton doboz"},
			models.LocalizedText{"en": "Sturdy double-wall cardboard box for medium loads and house moves.", "sk": "Pevná dvojvrstvová kartónová krabica na stredné náklady a sťahovanie.", "hu": "Erős duplafalú kartondoboz közepes terheléshez és költözéshez."},
			"40x30x25 cm", "0.35 kg", "Corrugated Cardboard", 2.80, 320, 40, 800,
			"CardBoard Solutions Ltd.", "CBS-002",
			"https://images.unsplash.com/photo-1607166452427-7e4477079cb9?w=400&h=300&fit=crop"),
		p("PKWS-EN-003", "BUBB-WRAP-003", "packing",
			models.LocalizedText{"en": "Bubble Wrap Roll", "sk": "Rolka bublinkovej fólie", "hu": "Buborékfólia tekercs"},
			models.LocalizedText{"en": "Protective bubble wrap roll, 50 cm wide, for fragile goods.", "sk": "Ochranná bublinková fólia, šírka 50 cm, pre krehký tovar.", "hu": "Védő buborékfólia tekercs, 50 cm széles, törékeny árukhoz."},
			"50 cm x 100 m", "2.1 kg", "LDPE Film", 18.90, 85, 20, 200,
			"FlexiPack s.r.o.", "FLX-014",
			"https://images.unsplash.com/photo-1605164599901-db7f68c4b175?w=400&h=300&fit=crop"),
		p("PKWS-EN-004", "PAPER-CUP-004", "food_beverage",
			models.LocalizedText{"en": "Paper Coffee Cup 250ml", "sk": "Papierový pohár na kávu 250ml", "hu": "Papír kávéspohár 250ml"},
			models.LocalizedText{"en": "Single-wall paper cup for hot drinks, pack of 50.", "sk": "Jednovrstvový papierový pohár na horúce nápoje, balenie 50 ks.", "hu": "Egyfalú papírpohár forró italokhoz, 50 darabos csomag."},
			"250 ml", "0.55 kg", "Food-grade Paper", 4.20, 640, 100, 2000,
			"CupServe Kft.", "CSV-031",
			"https://images.unsplash.com/photo-1577937927133-66ef06acdf18?w=400&h=300&fit=crop"),
		p("PKWS-EN-005", "CLEAN-GLV-005", "hygiene_cleaning",
			models.LocalizedText{"en": "Nitrile Gloves Box", "sk": "Nitrilové rukavice v krabici", "hu": "Nitril kesztyű doboz"},
			models.LocalizedText{"en": "Powder-free nitrile gloves, size M, box of 100.", "sk": "Nitrilové rukavice bez púdru, veľkosť M, 100 ks v krabici.", "hu": "Púdermentes nitril kesztyű, M méret, 100 db-os doboz."},
			"Size M", "0.48 kg", "Nitrile", 7.90, 150, 30, 500,
			"SafeHands Ltd.", "SFH-008",
			"https://images.unsplash.com/photo-1584744982491-665216d95f8b?w=400&h=300&fit=crop"),
		p("PKWS-EN-006", "DISP-PLT-006", "disposable",
			models.LocalizedText{"en": "Disposable Paper Plates", "sk": "Jednorazové papierové taniere", "hu": "Eldobható papírtányérok"},
			models.LocalizedText{"en": "Biodegradable paper plates, 23 cm, pack of 100.", "sk": "Biologicky rozložiteľné papierové taniere, 23 cm, balenie 100 ks.", "hu": "Biológiailag lebomló papírtányérok, 23 cm, 100 darabos csomag."},
			"23 cm", "1.2 kg", "Bagasse Paper", 6.50, 0, 25, 600,
			"GreenServe GmbH", "GRS-042",
			"https://images.unsplash.com/photo-1578269174936-2709b6aeb913?w=400&h=300&fit=crop"),
		p("PKWS-EN-007", "IND-TAPE-007", "industrial",
			models.LocalizedText{"en": "Industrial Packing Tape", "sk": "Priemyselná baliaca páska", "hu": "Ipari csomagolószalag"},
			models.LocalizedText{"en": "Heavy-duty adhesive tape, 48 mm x 66 m, 6-roll pack.", "sk": "Odolná lepiaca páska, 48 mm x 66 m, balenie 6 roliek.", "hu": "Nagy teherbírású ragasztószalag, 48 mm x 66 m, 6 tekercses csomag."},
			"48 mm x 66 m", "0.9 kg", "BOPP Film", 9.40, 210, 35, 700,
			"TapeWorks a.s.", "TPW-019",
			"https://images.unsplash.com/photo-1586864387789-628af9feed72?w=400&h=300&fit=crop"),
		p("PKWS-EN-008", "STRETCH-FLM-008", "industrial",
			models.LocalizedText{"en": "Pallet Stretch Film", "sk": "Paletová prieťažná fólia", "hu": "Raklap sztreccsfólia"},
			models.LocalizedText{"en": "Machine-grade stretch film for pallet wrapping, 17 micron.", "sk": "Strojová prieťažná fólia na balenie paliet, 17 mikrónov.", "hu": "Gépi sztreccsfólia raklapcsomagoláshoz, 17 mikron."},
			"500 mm x 1500 m", "16 kg", "LLDPE", 42.00, 18, 10, 120,
			"FlexiPack s.r.o.", "FLX-027",
			"https://images.unsplash.com/photo-1587293852726-70cdb56c2866?w=400&h=300&fit=crop"),
	}
}
