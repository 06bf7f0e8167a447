package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
)

var userClient *user.Client

// InitClerk initializes the Clerk client using the recommended pattern
func InitClerk() {
	secretKey := os.Getenv("CLERK_SECRET_KEY")
	if secretKey == "" {
		log.Printf("WARNING: CLERK_SECRET_KEY environment variable is not set. Clerk features will be disabled.")
		return
	}

	// Set global Clerk key (recommended approach)
	clerk.SetKey(secretKey)

	// Also initialize user client for API operations
	config := &clerk.ClientConfig{}
	config.Key = &secretKey
	userClient = user.NewClient(config)

	log.Printf("Clerk initialized successfully")
}

// ClerkAuthMiddleware validates Clerk JWT tokens using the proper SDK approach
func ClerkAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clerk authentication not available"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		claims, err := jwt.Verify(c.Request.Context(), &jwt.VerifyParams{
			Token: tokenString,
		})
		if err != nil {
			log.Printf("JWT verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		// Subject contains the Clerk user ID
		userID := claims.Subject
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido: no se pudo extraer el ID del usuario"})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("clerkClaims", claims)
		c.Next()
	}
}

// GetUserFromClerk retrieves user information from Clerk
func GetUserFromClerk(c *gin.Context) {
	if userClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clerk authentication not available"})
		return
	}

	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ID de usuario no encontrado"})
		return
	}

	user, err := userClient.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener información del usuario"})
		return
	}

	var email string
	if len(user.EmailAddresses) > 0 {
		email = user.EmailAddresses[0].EmailAddress
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"email":      email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"created_at": user.CreatedAt,
			"updated_at": user.UpdatedAt,
		},
	})
}

// ClerkWebhookHandler handles Clerk webhooks for user events using Svix
func ClerkWebhookHandler(c *gin.Context) {
	// Get the webhook signing secret from environment
	webhookSecret := os.Getenv("CLERK_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Printf("ERROR: CLERK_WEBHOOK_SECRET environment variable is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	// Read the raw body
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("ERROR: reading request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	// Verify the webhook signature with Svix
	wh, err := svix.NewWebhook(webhookSecret)
	if err != nil {
		log.Printf("ERROR: creating Svix webhook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize webhook verification"})
		return
	}

	if err := wh.Verify(body, c.Request.Header); err != nil {
		log.Printf("ERROR: Svix webhook verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	// Parse the webhook payload from the body we already read
	var webhookData map[string]interface{}
	if err := json.Unmarshal(body, &webhookData); err != nil {
		log.Printf("ERROR: parsing JSON payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	eventType, ok := webhookData["type"].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event type"})
		return
	}

	log.Printf("Processing webhook event: %s", eventType)

	switch eventType {
	case "user.created":
		handleUserCreated(c, webhookData)
	case "user.updated":
		handleUserUpdated(c, webhookData)
	case "user.deleted":
		handleUserDeleted(c, webhookData)
	default:
		log.Printf("Event type %s not handled", eventType)
		c.JSON(http.StatusOK, gin.H{"message": "Event received but not handled"})
	}
}

// extractClerkUser pulls the user id, primary email and full name out of a
// Clerk webhook payload.
func extractClerkUser(webhookData map[string]interface{}) (userID, email, fullName string, ok bool) {
	data, castOK := webhookData["data"].(map[string]interface{})
	if !castOK {
		return "", "", "", false
	}

	userID, castOK = data["id"].(string)
	if !castOK || userID == "" {
		return "", "", "", false
	}

	if emailAddresses, castOK := data["email_addresses"].([]interface{}); castOK {
		for _, emailAddr := range emailAddresses {
			if emailMap, isMap := emailAddr.(map[string]interface{}); isMap {
				if addr, isString := emailMap["email_address"].(string); isString && addr != "" {
					email = addr
					break
				}
			}
		}
	}

	firstName, _ := data["first_name"].(string)
	lastName, _ := data["last_name"].(string)
	fullName = strings.TrimSpace(firstName + " " + lastName)
	if fullName == "" && email != "" {
		fullName = strings.Split(email, "@")[0] // Use email username as fallback
	}

	return userID, email, fullName, true
}

// handleUserCreated creates a new user in the database when they sign up through Clerk
func handleUserCreated(c *gin.Context, webhookData map[string]interface{}) {
	userID, email, fullName, ok := extractClerkUser(webhookData)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	newUser := &models.User{
		ID:        userID,
		Email:     email,
		Name:      fullName,
		Password:  "", // No password needed for Clerk users
		CreatedAt: time.Now(),
	}

	if err := userRepo.CreateUser(newUser); err != nil {
		log.Printf("ERROR: creating user in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	log.Printf("User created successfully: ID=%s, Email=%s", userID, email)
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

// handleUserUpdated updates user information in the database
func handleUserUpdated(c *gin.Context, webhookData map[string]interface{}) {
	userID, email, fullName, ok := extractClerkUser(webhookData)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	updated := &models.User{
		ID:    userID,
		Email: email,
		Name:  fullName,
	}

	if err := userRepo.UpdateUser(updated); err != nil {
		log.Printf("Error updating user in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	log.Printf("User updated successfully: ID=%s, Email=%s", userID, email)
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// handleUserDeleted removes the user from the database and drops their
// in-memory session: identity is gone, so the portfolio state goes with it.
func handleUserDeleted(c *gin.Context, webhookData map[string]interface{}) {
	userID, _, _, ok := extractClerkUser(webhookData)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	if err := userRepo.DeleteUser(userID); err != nil {
		log.Printf("Error deleting user from database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	appContainer.HandleAuthChange(userID)

	log.Printf("User deleted successfully: ID=%s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
