package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"farmlot/pkg/config"
	"farmlot/pkg/database"
	"farmlot/pkg/logger"
	"farmlot/pkg/models"
	"farmlot/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedListing struct {
	name        string
	description string
	category    string
	price       float64
	year        int
	hours       int
	condition   string
	features    []string
	photoCount  int
}

var sampleListings = []seedListing{
	{
		name:        "John Deere 5075E Utility Tractor",
		description: "75 HP utility tractor with low hours, one owner, serviced on schedule. Ready for loader work or haying.",
		category:    "tractors",
		price:       45500,
		year:        2019,
		hours:       1240,
		condition:   "Excellent",
		features:    []string{"4WD", "Cab with AC", "540 PTO", "Loader ready"},
		photoCount:  3,
	},
	{
		name:        "Case IH Farmall 75C",
		description: "Dependable mid-size tractor, fresh rear tires, recent hydraulic service.",
		category:    "tractors",
		price:       38900,
		year:        2017,
		hours:       2100,
		condition:   "Good",
		features:    []string{"4WD", "12x12 power shuttle"},
		photoCount:  2,
	},
	{
		name:        "New Holland BR7060 Round Baler",
		description: "4x5 round baler, net wrap and twine, shedded its whole life.",
		category:    "harvesters",
		price:       14500,
		year:        2014,
		hours:       0,
		condition:   "Good",
		features:    []string{"Net wrap", "Bale ramp"},
		photoCount:  2,
	},
	{
		name:        "Kuhn GMD 700 Disc Mower",
		description: "9-foot cut, new blades last season, turns over clean.",
		category:    "implements",
		price:       6200,
		year:        2016,
		hours:       0,
		condition:   "Fair",
		features:    []string{"9 ft cut"},
		photoCount:  1,
	},
	{
		name:        "Great Plains 1006NT No-Till Drill",
		description: "10-foot no-till drill, acre meter reads 4,800, openers at 60%.",
		category:    "implements",
		price:       21000,
		year:        2015,
		hours:       0,
		condition:   "Good",
		features:    []string{"No-till", "Small seeds box"},
		photoCount:  2,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	if err := seedOperator(db, log); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	for i, data := range sampleListings {
		var existing models.Listing
		result := db.Where("name = ?", data.name).First(&existing)
		if result.Error == nil {
			log.Info("Listing %q already exists, skipping", data.name)
			continue
		}

		if err := createListing(db, s3Client, httpClient, data, i, log); err != nil {
			log.Error("Failed to create listing %q: %v", data.name, err)
			continue
		}
		time.Sleep(200 * time.Millisecond)
	}

	return nil
}

func seedOperator(db *gorm.DB, log *logger.Logger) error {
	var existing models.User
	result := db.Where("email = ?", "operator@farmlot.dev").First(&existing)
	if result.Error == nil {
		log.Info("Operator user already exists, skipping")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("farmlot123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	operator := &models.User{
		Email:    "operator@farmlot.dev",
		Username: "operator",
		Password: string(hashedPassword),
		Role:     models.RoleOperator,
		IsActive: true,
	}
	if err := operator.BeforeCreate(nil); err != nil {
		return fmt.Errorf("failed to generate operator ID: %w", err)
	}

	if err := db.Create(operator).Error; err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}

	log.Info("Created operator user: %s", operator.Email)
	return nil
}

func createListing(db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, data seedListing, index int, log *logger.Logger) error {
	features, err := json.Marshal(data.features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	listing := &models.Listing{
		Name:        data.name,
		Description: data.description,
		Category:    data.category,
		Price:       data.price,
		Year:        data.year,
		Hours:       data.hours,
		Condition:   data.condition,
		Features:    features,
		IsActive:    true,
	}
	if err := listing.BeforeCreate(nil); err != nil {
		return fmt.Errorf("failed to generate listing ID: %w", err)
	}

	for p := 0; p < data.photoCount; p++ {
		photoURL := seedPhotoURL(s3Client, httpClient, listing.ID, index, p, log)
		listing.Photos = append(listing.Photos, models.ListingPhoto{
			URL:       photoURL,
			IsMain:    p == 0,
			SortOrder: p,
		})
	}

	if err := db.Create(listing).Error; err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	log.Info("Created listing: %s ($%.2f, %d photos)", listing.Name, listing.Price, len(listing.Photos))
	return nil
}

// seedPhotoURL fetches a placeholder image and uploads it through the S3
// client. When the fetch or upload fails the source URL is used directly so
// seeding still produces a browsable catalog.
func seedPhotoURL(s3Client *s3.Client, httpClient *http.Client, listingID string, index, photo int, log *logger.Logger) string {
	sourceURL := fmt.Sprintf("https://picsum.photos/seed/farmlot-%d-%d/1200/800", index, photo)

	resp, err := httpClient.Get(sourceURL)
	if err != nil {
		log.Warn("Failed to fetch placeholder image: %v", err)
		return sourceURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Placeholder image API returned status %d", resp.StatusCode)
		return sourceURL
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil || len(imageData) == 0 {
		log.Warn("Failed to read placeholder image: %v", err)
		return sourceURL
	}

	fileKey := fmt.Sprintf("listings/%s/seed_%d.jpg", listingID, photo)
	uploadedURL, err := s3Client.UploadFile(fileKey, bytes.NewReader(imageData), "image/jpeg")
	if err != nil {
		log.Warn("Failed to upload seed image to S3: %v", err)
		return sourceURL
	}

	return uploadedURL
}
