package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
)

func (a *App) tprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

func premiumMark(v api.Video) string {
	if v.IsPremium {
		return "premium"
	}
	return "free"
}

// Videos lists the catalogue visible to the caller.
func (a *App) Videos(ctx context.Context) error {
	videos, err := a.api.ListVideos(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(videos) == 0 {
		a.printf("No videos.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	a.tprintf(tw, "ID\tTITLE\tTIER\tSTATUS\n")
	for _, v := range videos {
		a.tprintf(tw, "%d\t%s\t%s\t%s\n", v.ID, v.Title, premiumMark(v), v.Status)
	}
	return nil
}

// Video shows one video: video <id>.
func (a *App) Video(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	v, err := a.api.GetVideo(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	a.printf("#%d %s [%s, %s]\n", v.ID, v.Title, premiumMark(*v), v.Status)
	if v.Description != nil && *v.Description != "" {
		a.printf("%s\n", *v.Description)
	}
	if v.IsHidden {
		a.printf("(hidden)\n")
	}
	return nil
}

// Play prints the playback URL once the video is ready: play <id>.
func (a *App) Play(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	pb, err := a.api.PlayVideo(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	if pb.PlaybackURL == nil {
		a.printf("Video is %s, no playback URL yet.\n", pb.Status)
		return nil
	}
	a.printf("%s\n", *pb.PlaybackURL)
	return nil
}

// Upload sends a local file to object storage and prints the key to pass to
// create: upload <path>.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.fail(errors.New("usage: upload <path>"))
	}

	slot, err := a.api.RequestSourceUpload(ctx)
	if err != nil {
		return a.fail(err)
	}
	if err := a.upload(ctx, slot.UploadURL, args[0]); err != nil {
		return a.fail(err)
	}
	a.printf("Uploaded. Source key: %s\n", slot.Key)
	return nil
}

// Create registers a new video with the asset provider. The source is either
// a public URL or a key returned by upload.
func (a *App) Create(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	source, err := getSimpleText(a.reader, "Source URL or uploaded key", a.out)
	if err != nil {
		return err
	}
	premium, err := getYesNo(a.reader, "Premium only?", a.out)
	if err != nil {
		return err
	}
	hidden, err := getYesNo(a.reader, "Hidden?", a.out)
	if err != nil {
		return err
	}

	req := &api.CreateVideoRequest{Title: title, IsPremium: premium, IsHidden: hidden}
	if description != "" {
		req.Description = &description
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req.SourceURL = source
	} else {
		req.SourceKey = source
	}

	v, err := a.api.CreateVideo(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Created video #%d (%s)\n", v.ID, v.Status)
	return nil
}
