package oss

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// MaxUploadSize is the request-level guard for any single uploaded file.
const MaxUploadSize = int64(5 * 1024 * 1024)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

/* =======================================================================
   WebP options (ENV-driven)
======================================================================= */

type WebPOptions struct {
	MaxW        int     // resize bound, keep aspect
	MaxH        int
	TargetKB    int     // 0 = encode once with Quality
	Quality     float32
	MinQ        float32 // quality binary-search bounds
	MaxQ        float32
	ToleranceKB int
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:        envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:        envInt("IMAGE_WEBP_MAX_H", 1600),
		TargetKB:    envInt("IMAGE_WEBP_TARGET_KB", 150),
		Quality:     envFloat("IMAGE_WEBP_QUALITY", 80),
		MinQ:        envFloat("IMAGE_WEBP_MIN_Q", 45),
		MaxQ:        envFloat("IMAGE_WEBP_MAX_Q", 85),
		ToleranceKB: envInt("IMAGE_WEBP_TOLERANCE_KB", 8),
	}
}

/* =======================================================================
   Decode (jpeg/png/webp) with MIME sniff, then extension fallback
======================================================================= */

var ErrUnsupportedImage = fmt.Errorf("unsupported image format")

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, ErrUnsupportedImage
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

/* =======================================================================
   Encode WebP
   - TargetKB > 0 → binary search quality until <= target+tolerance
   - TargetKB = 0 → single encode at Quality
======================================================================= */

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opt.TargetKB <= 0 {
		q := opt.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(q)
	}

	target := opt.TargetKB * 1024
	tol := opt.ToleranceKB * 1024
	if tol <= 0 {
		tol = 8 * 1024
	}
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 {
		high = 85
	}
	if low > high {
		low, high = high, low
	}

	var best []byte
	for i := 0; i < 8; i++ {
		q := (low + high) / 2
		data, err := encodeQ(q)
		if err != nil {
			return nil, err
		}
		if len(data) <= target+tol {
			best = data
			low = q // fits; try higher quality
		} else {
			high = q
		}
	}
	if best == nil {
		return encodeQ(low)
	}
	return best, nil
}

// SquareCrop center-crops to a square of the given size. Used for profile
// photos so the apps can rely on a fixed aspect ratio.
func SquareCrop(img image.Image, size int) image.Image {
	return imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
}

// ConvertProfilePhotoToWebP is the profile-photo variant of ConvertToWebP:
// square crop at 512px, then the usual webp encode.
func ConvertProfilePhotoToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img = SquareCrop(img, envInt("IMAGE_PROFILE_SIZE", 512))
	return encodeToWebP(img, DefaultWebPOptions())
}

// ConvertToWebP reads, decodes, bounds and re-encodes an uploaded image.
func ConvertToWebP(file multipart.File, filename string, opt WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	return encodeToWebP(img, opt)
}

/* =======================================================================
   OSS service
======================================================================= */

type OSSService struct {
	Client     *alioss.Client
	Bucket     *alioss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional key prefix, e.g. "madrasas"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := alioss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSService) buildObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	if s.Prefix != "" {
		return s.Prefix + "/" + name
	}
	return name
}

func (s *OSSService) PublicURL(key string) string {
	// endpoint may come with or without scheme
	ep := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, ep, key)
}

// UploadImageAsWebP recompresses an uploaded image to webp and stores it under
// keyPrefix. Returns the public URL.
func (s *OSSService) UploadImageAsWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "file too large (max 5MB)")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	webpData, err := ConvertToWebP(src, fh.Filename, DefaultWebPOptions())
	if err != nil {
		if err == ErrUnsupportedImage {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported image format (use jpg/png/webp)")
		}
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	key := s.buildObjectKey(base + ".webp")
	if keyPrefix != "" {
		key = strings.Trim(keyPrefix, "/") + "/" + key
	}

	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType("image/webp"),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(webpData), opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadProfilePhoto is UploadImageAsWebP with the square-crop pipeline.
func (s *OSSService) UploadProfilePhoto(ctx context.Context, fh *multipart.FileHeader, keyPrefix string) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "file too large (max 5MB)")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	webpData, err := ConvertProfilePhotoToWebP(src, fh.Filename)
	if err != nil {
		if err == ErrUnsupportedImage {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported image format (use jpg/png/webp)")
		}
		return "", err
	}

	key := s.buildObjectKey("profile.webp")
	if keyPrefix != "" {
		key = strings.Trim(keyPrefix, "/") + "/" + key
	}
	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType("image/webp"),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(webpData), opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadDocument stores a non-image file (notice PDFs, result sheets) as-is.
func (s *OSSService) UploadDocument(ctx context.Context, fh *multipart.FileHeader, keyPrefix string, allowedTypes []string) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "file too large (max 5MB)")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	ct := http.DetectContentType(head[:n])
	if len(allowedTypes) > 0 {
		ok := false
		for _, a := range allowedTypes {
			if strings.HasPrefix(ct, a) {
				ok = true
				break
			}
		}
		if !ok {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported file type: "+ct)
		}
	}
	reader := io.MultiReader(bytes.NewReader(head[:n]), src)

	key := s.buildObjectKey(fh.Filename)
	if keyPrefix != "" {
		key = strings.Trim(keyPrefix, "/") + "/" + key
	}

	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType(ct),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, reader, opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// DeleteByPublicURL best-effort removes an object given its public URL.
// Callers ignore the error: an orphaned object is preferable to a failed
// delete of the owning row.
func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return nil
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return fmt.Errorf("no object key in url")
	}
	if err := s.Bucket.DeleteObject(key, alioss.WithContext(ctx)); err != nil {
		log.Printf("[OSS] delete %s failed: %v", key, err)
		return err
	}
	return nil
}
