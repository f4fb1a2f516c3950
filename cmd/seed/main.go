package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Cinebook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	// Delete in reverse dependency order
	tables := []string{
		"confirmed_seats",
		"orders",
		"shows",
		"theatres",
		"movies",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Seed movies first (no dependencies)
	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	// Seed theatres (no dependencies)
	theatreIDs, err := s.SeedTheatres()
	if err != nil {
		return fmt.Errorf("failed to seed theatres: %w", err)
	}

	// Seed shows
	if err := s.SeedShows(movieIDs, theatreIDs); err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}

	// Clear Redis so no stale seat locks or cached seatmaps survive the reseed
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedMovies creates sample movies
func (s *Seeder) SeedMovies() ([]string, error) {
	fmt.Println("  🎬 Seeding movies...")

	var movieIDs []string

	moviesData := []struct {
		title    string
		duration int
		language string
		genre    string
	}{
		{"Interstellar", 169, "English", "Sci-Fi"},
		{"3 Idiots", 170, "Hindi", "Comedy-Drama"},
		{"Inception", 148, "English", "Thriller"},
		{"Dangal", 161, "Hindi", "Sports-Drama"},
		{"Oppenheimer", 180, "English", "Biography"},
	}

	for _, movieData := range moviesData {
		movie := shows.Movie{
			MovieID:         uuid.New().String(),
			Title:           movieData.title,
			DurationMinutes: movieData.duration,
			Language:        movieData.language,
			Genre:           movieData.genre,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}

		movieIDs = append(movieIDs, movie.MovieID)
		fmt.Printf("    ✅ Created movie: %s (%s)\n", movie.Title, movie.Language)
	}

	return movieIDs, nil
}

// SeedTheatres creates sample theatres with seat layouts
func (s *Seeder) SeedTheatres() ([]string, error) {
	fmt.Println("  🏟️ Seeding theatres...")

	var theatreIDs []string

	theatresData := []struct {
		name           string
		city           string
		rows           int
		seatsPerRow    int
		premiumFromRow string
		blockedSeats   shows.SeatList
	}{
		{
			name:           "Galaxy Cinema",
			city:           "Mumbai",
			rows:           10,
			seatsPerRow:    12,
			premiumFromRow: "C",
			blockedSeats:   shows.SeatList{"A5", "B10", "C8"},
		},
		{
			name:           "PVR Orion",
			city:           "Bengaluru",
			rows:           8,
			seatsPerRow:    14,
			premiumFromRow: "D",
			blockedSeats:   shows.SeatList{},
		},
		{
			name:           "Regal Talkies",
			city:           "Pune",
			rows:           5,
			seatsPerRow:    10,
			premiumFromRow: "C",
			blockedSeats:   shows.SeatList{"E1", "E10"},
		},
	}

	for _, theatreData := range theatresData {
		theatre := shows.Theatre{
			TheatreID:      uuid.New().String(),
			Name:           theatreData.name,
			City:           theatreData.city,
			Rows:           theatreData.rows,
			SeatsPerRow:    theatreData.seatsPerRow,
			PremiumFromRow: theatreData.premiumFromRow,
			BlockedSeats:   theatreData.blockedSeats,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&theatre).Error; err != nil {
			return nil, fmt.Errorf("failed to create theatre %s: %w", theatre.Name, err)
		}

		theatreIDs = append(theatreIDs, theatre.TheatreID)
		fmt.Printf("    ✅ Created theatre: %s (%d seats)\n", theatre.Name, theatre.Capacity())
	}

	return theatreIDs, nil
}

// SeedShows creates upcoming shows across the seeded movies and theatres
func (s *Seeder) SeedShows(movieIDs []string, theatreIDs []string) error {
	fmt.Println("  🎪 Seeding shows...")

	showsData := []struct {
		movieIndex   int
		theatreIndex int
		hoursFromNow int
		price        float64
	}{
		{0, 0, 6, 350.0},   // Interstellar at Galaxy Cinema, tonight
		{0, 1, 30, 420.0},  // Interstellar at PVR Orion, tomorrow
		{1, 0, 10, 250.0},  // 3 Idiots at Galaxy Cinema
		{2, 1, 54, 400.0},  // Inception at PVR Orion
		{3, 2, 26, 180.0},  // Dangal at Regal Talkies
		{4, 0, 78, 500.0},  // Oppenheimer at Galaxy Cinema
		{4, 2, 102, 220.0}, // Oppenheimer at Regal Talkies
	}

	for _, showData := range showsData {
		show := shows.Show{
			ShowID:    uuid.New().String(),
			MovieID:   movieIDs[showData.movieIndex],
			TheatreID: theatreIDs[showData.theatreIndex],
			StartTime: time.Now().Add(time.Duration(showData.hoursFromNow) * time.Hour),
			Price:     showData.price,
			Status:    shows.ShowStatusScheduled,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&show).Error; err != nil {
			return fmt.Errorf("failed to create show: %w", err)
		}

		fmt.Printf("    ✅ Created show: %s (₹%.0f, %s)\n",
			show.ShowID, show.Price, show.StartTime.Format(time.RFC3339))
	}

	return nil
}
