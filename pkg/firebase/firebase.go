package firebase

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	cloudstorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app, auth client and storage bucket
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	Images      *ImageBucket
}

// InitFirebase initializes the Firebase application, authentication client
// and the default storage bucket
func InitFirebase(ctx context.Context, credentialsPath, storageBucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: storageBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default storage bucket: %w", err)
	}

	log.Println("Firebase app, auth client and storage bucket initialized successfully!")
	return &App{
		FirebaseApp: firebaseApp,
		AuthClient:  authClient,
		Images:      &ImageBucket{bucket: bucket, name: storageBucket},
	}, nil
}

// ImageBucket stores uploaded images in a Firebase storage bucket and hands
// back their public download URL
type ImageBucket struct {
	bucket *cloudstorage.BucketHandle
	name   string
}

// Save streams an object into the bucket under the given filename
func (b *ImageBucket) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	w := b.bucket.Object(filename).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	return PublicURL(b.name, filename), nil
}

// PublicURL builds the externally documented download URL for an object
func PublicURL(bucket, filename string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, filename)
}
