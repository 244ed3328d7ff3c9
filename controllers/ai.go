package controllers

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"farmigo/genai"
	"farmigo/weather"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageEditor is an optional collaborator that produces an annotated copy of
// an uploaded leaf image. The advisory endpoints behave identically whether
// or not one is wired in.
type ImageEditor interface {
	Edit(srcPath, prompt string) (string, error)
}

type AIController struct {
	Weather   *weather.Client
	Gemini    *genai.Client
	UploadDir string
	Editor    ImageEditor
	Log       *zap.Logger
}

// RecommendCrop applies fixed temperature thresholds to the current weather
// of the requested city. Any upstream problem degrades to the default
// recommendation, never to an error response.
func (ai *AIController) RecommendCrop(context *gin.Context) {
	recommendation := RecommendationSchema{
		RecommendedCrops: []string{"Wheat", "Maize"},
		SuggestedManure:  "Compost",
		Basis:            "default heuristic",
	}

	city := strings.TrimSpace(context.Query("city"))
	if city == "" {
		context.JSON(http.StatusOK, recommendation)
		return
	}

	observation, err := ai.Weather.Current(context.Request.Context(), city)
	if err != nil {
		if !errors.Is(err, weather.ErrNotConfigured) {
			ai.Log.Warn("weather lookup failed, serving default recommendation",
				zap.String("city", city), zap.Error(err))
		}
		context.JSON(http.StatusOK, recommendation)
		return
	}

	var basis []string
	if observation.Temp != nil {
		basis = append(basis, fmt.Sprintf("temp %gC", *observation.Temp))
		if *observation.Temp < 18 {
			recommendation.RecommendedCrops = []string{"Potato", "Barley"}
			recommendation.SuggestedManure = "Well-rotted manure"
		} else if *observation.Temp > 28 {
			recommendation.RecommendedCrops = []string{"Millet", "Sorghum"}
			recommendation.SuggestedManure = "Nitrogen-rich"
		}
	}
	if observation.Humidity != nil {
		basis = append(basis, fmt.Sprintf("humidity %g%%", *observation.Humidity))
	}
	if len(basis) > 0 {
		recommendation.Basis = strings.Join(basis, ", ")
	}
	context.JSON(http.StatusOK, recommendation)
}

func (ai *AIController) Chatbot(context *gin.Context) {
	var payload ChatPayload
	if err := context.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.Question) == "" {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "No question provided"})
		context.Abort()
		return
	}

	answer, err := ai.Gemini.Answer(context.Request.Context(), strings.TrimSpace(payload.Question))
	if err != nil {
		if errors.Is(err, genai.ErrNotConfigured) {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "GEMINI_API_KEY not configured on server"})
			context.Abort()
			return
		}
		if errors.Is(err, genai.ErrNoContent) {
			context.JSON(http.StatusBadGateway, ErrorResponse{Error: "Gemini returned no content"})
			context.Abort()
			return
		}
		ai.Log.Warn("chatbot upstream failed", zap.Error(err))
		context.JSON(http.StatusBadGateway, ErrorResponse{Error: fmt.Sprintf("Gemini error: %v", err)})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, ChatResponse{Answer: answer})
}

// DiseaseDetect stores the upload, runs a crude greenish-pixel heuristic to
// decide whether the image resembles foliage, and returns a fixed report
// template. No real classification happens here.
func (ai *AIController) DiseaseDetect(context *gin.Context) {
	file, err := context.FormFile("image")
	if err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "No image provided"})
		context.Abort()
		return
	}
	if file.Filename == "" {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Empty filename"})
		context.Abort()
		return
	}

	if err := os.MkdirAll(ai.UploadDir, 0o755); err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not store image"})
		context.Abort()
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	filename := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(ai.UploadDir, filename)
	if err := context.SaveUploadedFile(file, path); err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not store image"})
		context.Abort()
		return
	}

	prompt := context.PostForm("prompt")
	imageURL := "/uploads/" + filename

	if !looksLikeFoliage(path) {
		context.JSON(http.StatusOK, gin.H{
			"leafDetected": false,
			"message":      "Leaf not detected in the uploaded image",
			"image":        imageURL,
		})
		return
	}

	var editedImage *string
	if ai.Editor != nil {
		editPrompt := prompt
		if editPrompt == "" {
			editPrompt = "Enhance and highlight diseased leaf regions with subtle outlines"
		}
		if editedPath, editErr := ai.Editor.Edit(path, editPrompt); editErr == nil {
			url := "/uploads/" + filepath.Base(editedPath)
			editedImage = &url
		} else {
			ai.Log.Warn("image editor failed", zap.Error(editErr))
		}
	}

	const (
		diseaseName   = "Leaf Condition Analyzed"
		confidenceVal = 0.75
		adviceText    = "Ensure proper watering and monitor for spots; apply appropriate fungicide if symptoms persist."
	)

	report := DiseaseReportSchema{
		Title:         "Crop Disease Analysis Report",
		Disease:       diseaseName,
		ConfidencePct: confidenceVal * 100,
		Summary:       "Preliminary visual analysis of the uploaded leaf image has been completed.",
		ImmediateActions: []string{
			"Isolate severely affected leaves to prevent spread.",
			"Avoid overhead irrigation late in the day.",
			"Improve airflow by maintaining recommended spacing.",
		},
		TreatmentPlan: []string{
			"Day 0: Apply a copper-based or biological fungicide as per label.",
			"Day 7-10: Reassess. If symptoms persist, rotate to a different mode of action.",
			"Nutrition: Maintain balanced NPK and add micronutrients if deficiency is suspected.",
		},
		Prevention: []string{
			"Rotate crops next season and use tolerant varieties if available.",
			"Mulch to reduce soil splash and conserve moisture.",
			"Sanitize tools and remove plant debris after harvest.",
		},
		Advice:      adviceText,
		AnalyzedAt:  time.Now().UTC().Format(time.RFC3339),
		Image:       imageURL,
		EditedImage: editedImage,
	}

	context.JSON(http.StatusOK, DiseaseResultSchema{
		Disease:      diseaseName,
		Confidence:   confidenceVal,
		Advice:       adviceText,
		Image:        imageURL,
		EditedImage:  editedImage,
		PromptUsed:   prompt,
		LeafDetected: true,
		Report:       report,
	})
}

// looksLikeFoliage samples every 50th pixel and checks for a minimal share of
// green-dominant ones. Undecodable images pass, matching the permissive
// behavior of the upload flow.
func looksLikeFoliage(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return true
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	total := width * height
	if total == 0 {
		return true
	}

	greenish := 0
	sampled := 0
	for i := 0; i < total; i += 50 {
		x := bounds.Min.X + i%width
		y := bounds.Min.Y + i/width
		r, g, b, _ := img.At(x, y).RGBA()
		r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
		if g8 > r8+15 && g8 > b8+15 && g8 > 60 {
			greenish++
		}
		sampled++
	}
	if sampled == 0 {
		return true
	}
	return float64(greenish)/float64(sampled) >= 0.04
}
