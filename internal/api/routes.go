package api

import "github.com/gin-gonic/gin" // Gin web framework

// Services is everything the HTTP layer calls into
type Services struct {
	Users       UserService
	Games       GameService
	Tasks       TaskService
	Leaderboard LeaderboardService
	Biller      Biller            // nil disables /payment
	Health      map[string]Pinger // Dependencies checked by /healthz
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, s Services) {
	r.GET("/healthz", HealthHandler(s.Health))

	// User routes
	r.GET("/users/", ListUsersHandler(s.Users))
	userGroup := r.Group("/user")
	userGroup.POST("/register", RegisterHandler(s.Users))                // Registration with optional referral
	userGroup.PUT("/balance", AdjustBalanceHandler(s.Users))             // Direct balance adjustment
	userGroup.POST("/finish_task", FinishTaskHandler(s.Tasks))           // Task completion
	userGroup.DELETE("/game/:game_id", DeleteGameHandler(s.Games))       // Game removal, no refund
	userGroup.GET("/:user_id", GetUserHandler(s.Users))                  // Single user
	userGroup.GET("/:user_id/games", UserGamesHandler(s.Games))          // Games owned by the user
	userGroup.GET("/:user_id/friends", FriendsHandler(s.Users))          // Referred users
	userGroup.GET("/:user_id/tasks", UserTasksHandler(s.Tasks))          // Tasks still available
	userGroup.GET("/:user_id/top_place", TopPlaceHandler(s.Leaderboard)) // Leaderboard place

	// Game routes
	gameGroup := r.Group("/game")
	gameGroup.GET("/", ListGamesHandler(s.Games))
	gameGroup.POST("/create", CreateGameHandler(s.Games))
	gameGroup.PUT("/finish/:game_id", FinishGameHandler(s.Games))

	// Task admin routes
	taskGroup := r.Group("/tasks")
	taskGroup.GET("/", ListTasksHandler(s.Tasks))
	taskGroup.POST("/", CreateTaskHandler(s.Tasks))
	taskGroup.DELETE("/:task_id", DeleteTaskHandler(s.Tasks))

	r.GET("/leaderboard/top_10", TopTenHandler(s.Leaderboard))
	r.POST("/payment", PaymentHandler(s.Biller))
}
