package main

import (
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"reconweb/internal/config"
	"reconweb/internal/manifest"
	"reconweb/internal/store"
	"reconweb/internal/xlsxio"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type server struct {
	cfg  *config.Config
	log  zerolog.Logger
	jobs *store.Store
}

func newServer(cfg *config.Config, log zerolog.Logger, jobs *store.Store) *server {
	return &server{cfg: cfg, log: log, jobs: jobs}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.uploadHandler)
	mux.HandleFunc("/columns", s.columnsHandler)
	mux.HandleFunc("/duplicates", s.duplicatesHandler)
	mux.HandleFunc("/duplicates.xlsx", s.duplicatesDownloadHandler)
	mux.HandleFunc("/inputs", s.inputsHandler)
	mux.HandleFunc("/generate", s.generateHandler)
	mux.HandleFunc("/download", s.downloadHandler)
	mux.HandleFunc("/healthz", s.healthHandler)
	mux.HandleFunc("/api/status", s.statusHandler)
	return mux
}

// Step 1: upload the two rosters.
func (s *server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := uploadView{MaxUploadBytes: s.cfg.MaxUploadBytes}

	switch r.Method {
	case http.MethodGet:
		s.render(w, uploadTemplate, view)
	case http.MethodPost:
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			http.Error(w, "File too large", http.StatusBadRequest)
			return
		}

		pob, err := s.readUpload(r, "pob")
		if err != nil {
			view.Error = fmt.Sprintf("POB file: %v", err)
			s.render(w, uploadTemplate, view)
			return
		}
		portal, err := s.readUpload(r, "portal")
		if err != nil {
			view.Error = fmt.Sprintf("Portal file: %v", err)
			s.render(w, uploadTemplate, view)
			return
		}

		pob.Name = "POB"
		portal.Name = "Portal"

		job := s.jobs.Create()
		job.POB = pob
		job.Portal = portal

		s.log.Info().
			Str("run", job.ID).
			Int("pob_rows", pob.RowCount()).
			Int("portal_rows", portal.RowCount()).
			Msg("rosters uploaded")
		http.Redirect(w, r, "/columns?run="+job.ID, http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *server) readUpload(r *http.Request, field string) (manifest.Table, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return manifest.Table{}, fmt.Errorf("missing upload")
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	tbl, err := xlsxio.ReadTable(file, header.Filename)
	if err != nil {
		return manifest.Table{}, err
	}
	if tbl.RowCount() > s.cfg.MaxRows {
		return manifest.Table{}, fmt.Errorf("too many rows (> %d)", s.cfg.MaxRows)
	}
	return tbl, nil
}

// Step 2: pick the identifier and name columns, clean both tables, and run
// the duplicate gate.
func (s *server) columnsHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(w, r)
	if !ok {
		return
	}

	view := columnsView{
		RunID:      job.ID,
		POBCols:    job.POB.Headers,
		PortalCols: job.Portal.Headers,
		POBRows:    job.POB.RowCount(),
		PortalRows: job.Portal.RowCount(),
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, columnsTemplate, view)
	case http.MethodPost:
		job.POBNED = r.FormValue("pob_ned")
		job.POBName = r.FormValue("pob_name")
		job.PortalNED = r.FormValue("portal_ned")
		job.PortalName = r.FormValue("portal_name")

		if err := s.cleanTables(job); err != nil {
			// Bad column selection is not fatal: re-render for another pick.
			view.Error = err.Error()
			s.render(w, columnsTemplate, view)
			return
		}

		if job.HasDuplicates() {
			http.Redirect(w, r, "/duplicates?run="+job.ID, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/inputs?run="+job.ID, http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *server) cleanTables(job *store.Job) error {
	opts := manifest.CleanOptions{FooterRows: s.cfg.FooterRows}

	// The name columns must exist too, or report building would fail late.
	if _, err := job.POB.ColumnIndex(job.POBName); err != nil {
		return err
	}
	if _, err := job.Portal.ColumnIndex(job.PortalName); err != nil {
		return err
	}

	pob, err := manifest.Clean(job.POB, job.POBNED, opts)
	if err != nil {
		return err
	}
	portal, err := manifest.Clean(job.Portal, job.PortalNED, opts)
	if err != nil {
		return err
	}

	job.POBClean = pob.Table
	job.PortalClean = portal.Table
	job.POBDropped = pob.Dropped
	job.PortalDropped = portal.Dropped

	if pob.Kept == 0 || portal.Kept == 0 {
		s.log.Warn().
			Str("run", job.ID).
			Int("pob_kept", pob.Kept).
			Int("portal_kept", portal.Kept).
			Msg("a roster cleaned down to zero rows")
	}

	job.POBDups, err = manifest.DetectDuplicates(job.POBClean, job.POBNED)
	if err != nil {
		return err
	}
	job.PortalDups, err = manifest.DetectDuplicates(job.PortalClean, job.PortalNED)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("run", job.ID).
		Int("pob_kept", pob.Kept).
		Int("pob_dropped", pob.Dropped).
		Int("portal_kept", portal.Kept).
		Int("portal_dropped", portal.Dropped).
		Bool("duplicates", job.HasDuplicates()).
		Msg("rosters cleaned")
	return nil
}

// Step 3: the duplicate gate. Reconciliation is blocked until the user
// either re-uploads or explicitly accepts the duplicates.
func (s *server) duplicatesHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, duplicatesTemplate, duplicatesView{
			RunID:         job.ID,
			POBFlagged:    job.POBDups.FlaggedCount(),
			PortalFlagged: job.PortalDups.FlaggedCount(),
		})
	case http.MethodPost:
		switch r.FormValue("decision") {
		case "proceed":
			job.DuplicatesAccepted = true
			s.log.Info().Str("run", job.ID).Msg("duplicates accepted, proceeding")
			http.Redirect(w, r, "/inputs?run="+job.ID, http.StatusSeeOther)
		default: // reupload
			s.jobs.Delete(job.ID)
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Side channel for step 3: both cleaned rosters with duplicate identifier
// cells highlighted.
func (s *server) duplicatesDownloadHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(w, r)
	if !ok {
		return
	}

	buf, err := xlsxio.WriteDuplicateHighlight(
		xlsxio.HighlightSheet{Name: xlsxio.SheetPOB, Table: job.POBClean, IDColumn: job.POBNED, Flags: job.POBDups.Flags},
		xlsxio.HighlightSheet{Name: xlsxio.SheetPortal, Table: job.PortalClean, IDColumn: job.PortalNED, Flags: job.PortalDups.Flags},
	)
	if err != nil {
		s.log.Error().Err(err).Str("run", job.ID).Msg("highlight workbook failed")
		http.Error(w, "Failed to build workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="duplicates.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

// Step 4: the report metadata form. All fields are required; values are
// free text and flow into the reports verbatim.
func (s *server) inputsHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(w, r)
	if !ok {
		return
	}

	view := inputsView{RunID: job.ID, Fields: inputFields()}

	switch r.Method {
	case http.MethodGet:
		s.render(w, inputsTemplate, view)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		in := manifest.UserInputs{}
		for _, f := range manifest.RequiredFields {
			if vals, present := r.PostForm[f]; present {
				in[f] = vals[0]
			}
		}
		if err := in.Validate(); err != nil {
			view.Error = err.Error()
			s.render(w, inputsTemplate, view)
			return
		}
		job.Inputs = in
		http.Redirect(w, r, "/generate?run="+job.ID, http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func inputFields() []inputField {
	fields := make([]inputField, len(manifest.RequiredFields))
	for i, key := range manifest.RequiredFields {
		fields[i] = inputField{Key: key, Label: fieldLabel(key)}
	}
	return fields
}

// Step 5: reconcile and build the three reports.
func (s *server) generateHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(w, r)
	if !ok {
		return
	}
	if job.Inputs == nil {
		http.Redirect(w, r, "/inputs?run="+job.ID, http.StatusSeeOther)
		return
	}

	res, err := manifest.Reconcile(job.POBClean, job.POBNED, job.PortalClean, job.PortalNED)
	if err != nil {
		s.log.Error().Err(err).Str("run", job.ID).Msg("reconciliation failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reports, err := manifest.BuildReports(res, job.POBNED, job.POBName, job.PortalNED, job.PortalName, job.Inputs)
	if err != nil {
		if errors.Is(err, manifest.ErrMissingField) {
			http.Redirect(w, r, "/inputs?run="+job.ID, http.StatusSeeOther)
			return
		}
		s.log.Error().Err(err).Str("run", job.ID).Msg("report build failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	job.Result = res
	job.Reports = reports
	job.Generated = true

	s.log.Info().
		Str("run", job.ID).
		Int("manifest_count", res.ManifestCount()).
		Int("return_count", res.ReturnCount()).
		Msg("reports generated")

	s.render(w, resultTemplate, resultView{
		RunID:         job.ID,
		ManifestCount: res.ManifestCount(),
		ReturnCount:   res.ReturnCount(),
		POBKept:       job.POBClean.RowCount(),
		POBDropped:    job.POBDropped,
		PortalKept:    job.PortalClean.RowCount(),
		PortalDropped: job.PortalDropped,
	})
}

// Step 6: download the final workbook.
func (s *server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.job(w, r)
	if !ok {
		return
	}
	if !job.Generated {
		http.Redirect(w, r, "/inputs?run="+job.ID, http.StatusSeeOther)
		return
	}

	buf, err := xlsxio.WriteReports(job.Reports)
	if err != nil {
		s.log.Error().Err(err).Str("run", job.ID).Msg("report workbook failed")
		http.Error(w, "Failed to build workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="Final_Output.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

// job resolves the run ID from the request, restarting the wizard when the
// run is unknown or expired.
func (s *server) job(w http.ResponseWriter, r *http.Request) (*store.Job, bool) {
	id := r.FormValue("run")
	job, err := s.jobs.Get(id)
	if err != nil {
		s.log.Warn().Str("run", id).Msg("unknown run, restarting wizard")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return job, true
}

func (s *server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	if err := tmpl.Execute(w, data); err != nil {
		s.log.Error().Err(err).Str("template", tmpl.Name()).Msg("template execution failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
