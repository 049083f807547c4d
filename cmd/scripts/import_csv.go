package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Imports a product catalog from a CSV file into MongoDB. Each row is
// name,price,category[,image]; categories are created on first use.
func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get MongoDB connection string from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	// Get database name from environment
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "fidelease"
	}

	// Get CSV file path from command line arguments
	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	// Connect to MongoDB
	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	// Get database
	db := client.Database(dbName)

	// Import data
	err = importCatalog(db, csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import catalog: %v", err)
	}

	log.Println("Catalog imported successfully")
}

// importCatalog imports products and their categories from a CSV file
func importCatalog(db *mongo.Database, csvFilePath string) error {
	// Open CSV file
	file, err := os.Open(csvFilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Parse CSV file
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse CSV file: %v", err)
	}

	// Check if CSV file has header
	if len(records) < 2 {
		return fmt.Errorf("CSV file is empty or has only header")
	}

	// Get collections
	productsCollection := db.Collection("products")
	categoriesCollection := db.Collection("categories")

	// Categories seen so far, by name
	categoryIDs := make(map[string]primitive.ObjectID)

	// Process records
	for i, record := range records {
		// Skip header
		if i == 0 {
			continue
		}

		// Check if record has enough fields
		if len(record) < 3 {
			log.Printf("Warning: Record %d has less than 3 fields, skipping", i)
			continue
		}

		// Parse record
		name := record[0]
		price, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			log.Printf("Warning: Record %d has invalid price, skipping", i)
			continue
		}
		categoryName := record[2]
		image := ""
		if len(record) > 3 {
			image = record[3]
		}

		// Resolve or create the category
		categoryID, ok := categoryIDs[categoryName]
		if !ok {
			var category models.Category
			err = categoriesCollection.FindOne(context.Background(), bson.M{"name": categoryName}).Decode(&category)
			if err != nil {
				category = models.Category{
					ID:   primitive.NewObjectID(),
					Name: categoryName,
				}
				_, err = categoriesCollection.InsertOne(context.Background(), category)
				if err != nil {
					log.Printf("Warning: Failed to create category for record %d: %v", i, err)
					continue
				}
			}
			categoryID = category.ID
			categoryIDs[categoryName] = categoryID
		}

		// Create product
		product := models.Product{
			ID:         primitive.NewObjectID(),
			Name:       name,
			Price:      price,
			CategoryID: categoryID,
			Image:      image,
		}
		_, err = productsCollection.InsertOne(context.Background(), product)
		if err != nil {
			log.Printf("Warning: Failed to create product for record %d: %v", i, err)
			continue
		}
	}

	return nil
}
