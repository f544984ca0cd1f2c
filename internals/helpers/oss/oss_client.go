// file: internals/helpers/oss/oss_client.go
package oss

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// upload guard, attachments are small (photos, short clips of forms, documents)
var maxUploadSize = int64(10 * 1024 * 1024)

/* =======================================================================
   Image re-encode (jpeg/png/webp -> webp, keep-aspect downscale)
======================================================================= */

const (
	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = 80
)

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("unsupported image format: %s / %s", ct, ext)
		}
	}
	return img, err
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	scale := 1.0
	if sw := float64(maxW) / float64(w); sw < scale {
		scale = sw
	}
	if sh := float64(maxH) / float64(h); sh < scale {
		scale = sh
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// ConvertToWebP re-encodes an uploaded image to WebP, downscaling to fit
// the standard bounds.
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, webpMaxW, webpMaxH)
	return webp.EncodeRGBA(img, webpQuality)
}

func IsImageFilename(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *alioss.Client
	Bucket     *alioss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads/"
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

// UploadFromFormFileToDir uploads a multipart file as-is under dir and
// returns (objectKey, contentType).
func (s *OSSService) UploadFromFormFileToDir(dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	key := s.buildObjectKey(fh.Filename)
	if dir != "" {
		key = strings.Trim(dir, "/") + "/" + key
	}

	opts := []alioss.Option{
		alioss.ContentType(ct),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, reader, opts...); err != nil {
		return "", "", err
	}
	return key, ct, nil
}

// UploadImageAsWebP re-encodes an image upload to WebP and stores it under dir.
func (s *OSSService) UploadImageAsWebP(dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := s.buildObjectKey(base + ".webp")
	if dir != "" {
		key = strings.Trim(dir, "/") + "/" + key
	}

	opts := []alioss.Option{
		alioss.ContentType("image/webp"),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", err
	}
	return key, nil
}

func (s *OSSService) DeleteObject(key string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	return s.Bucket.DeleteObject(key)
}

func (s *OSSService) DeleteByPublicURL(publicURL string) error {
	key, err := ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.DeleteObject(key)
}

/* =======================================================================
   Public URL & key utils
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := s.Endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func ExtractKeyFromPublicURL(publicURL string) (string, error) {
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		base = strings.TrimRight(base, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), nil
		}
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

func (s *OSSService) buildObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, ext)
	if base == "" {
		base = "file"
	}
	ts := time.Now().Format("20060102_150405")

	prefix := s.Prefix
	if prefix != "" {
		prefix += "/"
	}
	return fmt.Sprintf("%s%s_%s_%s%s", prefix, slugify(base), ts, randHex(3), ext)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType resolves contentType from extension plus a 512B sniff.
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)

	if n > 0 {
		detected := http.DetectContentType(head[:n])
		if ct == "" || ct == "application/octet-stream" {
			ct = detected
		}
	}
	switch ext {
	case ".webp":
		ct = "image/webp"
	case ".svg":
		ct = "image/svg+xml"
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return ct, src, nil
	}
	combined := append([]byte{}, head[:n]...)
	body, _ := io.ReadAll(src)
	combined = append(combined, body...)
	return ct, bytes.NewReader(combined), nil
}
