package integration_test

const (
	// User related constants
	TestUserId    = 1
	TestUserName  = "John Doe"
	TestUserEmail = "test@example.com"

	// Movie related constants
	TestMovieTitle       = "Test Movie"
	TestMovieDescription = "A test movie description."
	TestMovieGenre       = "Drama"
	TestMovieLanguage    = "English"
	TestMovieDuration    = 120

	// Hall related constants
	TestHallName        = "Hall 1"
	TestHallRows        = 5
	TestHallSeatsPerRow = 10

	// Showtime related constants
	TestShowtimePrice = "12.50"
)
