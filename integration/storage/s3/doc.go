// Package s3 stores email template assets, such as logos, in Amazon S3 or an
// S3-compatible service (MinIO, Wasabi, DigitalOcean Spaces) and resolves
// their public URLs.
//
// Assets implements emailtemplate.AssetResolver, so stored logo paths render
// as bucket or CDN URLs:
//
//	var cfg s3.Config
//	config.MustLoad(&cfg)
//
//	assets, err := s3.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	svc := emailtemplate.NewService(tplCfg, repo, themes,
//		emailtemplate.WithAssetResolver(assets))
//
//	logoURL, err := assets.Upload(ctx, "logos/acme.png", file, "image/png")
//
// URLs use BaseURL when set, then the custom Endpoint, then the regional AWS
// host, in path or virtual-hosted style according to ForcePathStyle. Every key
// is placed under Prefix. Paths containing ".." are rejected.
//
// SDK errors are mapped onto ErrAssetNotFound, ErrBucketNotFound,
// ErrAccessDenied, ErrServiceUnavailable, ErrOperationTimeout and
// ErrOperationCanceled.
package s3
