// Package archiver drives the external 7-Zip executable that creates and
// extracts password-protected archives.
//
// The archive format itself is never touched here: SevenZip only builds the
// command line, runs it, and maps its failures onto the error taxonomy.
//
//	a := archiver.New(cfg.Archiver.Path, cfg.Archiver.CompressionLevel)
//	if err := a.Create(ctx, "photos", "out/archive_1718000000_3f9a.7z", pw); err != nil {
//	    // errors.Is(err, kerrors.ErrArchiver) or kerrors.ErrArchiverNotFound
//	}
//
// Header encryption (-mhe=on) is always requested so that file names inside
// the archive are hidden as well as their content.
package archiver
