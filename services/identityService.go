package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ExternalIdentity is the tuple the identity provider hands back after a
// successful sign-in. The application never sees credentials, only this.
type ExternalIdentity struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	PictureURL     string
}

// TokenVerifier is the slice of the Firebase auth client the sign-in
// exchange needs. Tests swap in a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type IdentityService struct {
	verifier TokenVerifier
}

var identityService *IdentityService

// InitIdentityService connects to Firebase Auth, which fronts the external
// sign-in providers. Uses a service account file when configured, ADC
// otherwise.
func InitIdentityService() {
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with service account: %v", err)
			return
		}
		log.Println("Firebase initialized with service account file")
	} else {
		app, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with ADC: %v", err)
			return
		}
		log.Println("Firebase initialized with Application Default Credentials")
	}

	client, err := app.Auth(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase auth client: %v", err)
		return
	}

	identityService = &IdentityService{verifier: client}
	log.Println("Identity service initialized successfully with Firebase Auth")
}

func GetIdentityService() *IdentityService {
	return identityService
}

// SetIdentityVerifier overrides the token verifier. Test hook.
func SetIdentityVerifier(v TokenVerifier) {
	identityService = &IdentityService{verifier: v}
}

// ResolveIdentity verifies a provider ID token and extracts the stable
// identity tuple. A verification failure means the caller is not signed in
// with the provider, nothing more.
func (s *IdentityService) ResolveIdentity(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	if s == nil || s.verifier == nil {
		return nil, fmt.Errorf("identity service not initialized")
	}

	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	identity := &ExternalIdentity{
		Provider:       token.Firebase.SignInProvider,
		ProviderUserID: token.UID,
	}

	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.PictureURL = picture
	}

	if identity.Name == "" {
		identity.Name = "Unknown User"
	}

	return identity, nil
}
