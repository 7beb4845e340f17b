package main

import (
	"fmt"
	"time"

	"melon-market/pkg/config"
	"melon-market/pkg/database"
	"melon-market/pkg/logger"
	"melon-market/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

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

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	members, err := seedMembers(db, log)
	if err != nil {
		return err
	}
	return seedPosts(db, members, log)
}

func seedMembers(db *gorm.DB, log *logger.Logger) ([]models.Member, error) {
	seeds := []struct {
		email   string
		name    string
		address string
	}{
		{"jiho@example.com", "Jiho", "Mapo-gu, Seoul"},
		{"minji@example.com", "Minji", "Gangnam-gu, Seoul"},
		{"sora@example.com", "Sora", "Haeundae-gu, Busan"},
	}

	members := make([]models.Member, 0, len(seeds))
	for _, seed := range seeds {
		var member models.Member
		err := db.Where("email = ?", seed.email).First(&member).Error
		if err == nil {
			members = append(members, member)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		member = models.Member{
			Email:    seed.email,
			Name:     seed.name,
			Password: string(hashed),
			Address:  seed.address,
		}
		if err := db.Create(&member).Error; err != nil {
			return nil, fmt.Errorf("failed to create member %s: %w", seed.email, err)
		}
		log.Info("Created member %s", member.Name)
		members = append(members, member)
	}
	return members, nil
}

func seedPosts(db *gorm.DB, members []models.Member, log *logger.Logger) error {
	if len(members) == 0 {
		return nil
	}

	seeds := []struct {
		category string
		title    string
		content  string
		price    int
	}{
		{"Electronics", "Barely used mechanical keyboard", "Bought last month, switching to a laptop.", 45000},
		{"Sports", "Road bike, recently serviced", "Chain and brake pads replaced in spring.", 150000},
		{"Furniture", "Two-seater sofa", "Pick up only, third floor without elevator.", 80000},
		{"Books", "Go programming books bundle", "Five books, light wear on covers.", 20000},
	}

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Posts already seeded, skipping")
		return nil
	}

	for i, seed := range seeds {
		member := members[i%len(members)]
		post := models.Post{
			MemberID:      member.ID,
			Category:      seed.category,
			Title:         seed.title,
			Content:       seed.content,
			Price:         seed.price,
			ProductStatus: models.ProductForSale,
			Visibility:    models.VisibilityVisible,
			PostedAt:      time.Now().Add(-time.Duration(i) * time.Hour),
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post %q: %w", seed.title, err)
		}
		log.Info("Created post %q for %s", post.Title, member.Name)
	}
	return nil
}
