package lint

import (
	"context"
	"regexp"
	"strings"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/format"
	"github.com/packlint/packlint/internal/manifest"
	"github.com/packlint/packlint/internal/vfs"
)

func (l *Linter) checkMain(_ context.Context) {
	v, p := l.pkg.PublishedField("main")
	if v == nil {
		l.checkImplicitIndex()
		return
	}
	if !v.IsString() {
		l.invalidValueType(p, v, "string")
		return
	}
	fp := vfs.Normalize(v.Str)
	l.checkFile(fp, fileCheckOptions{diagPath: p})

	if l.exportsVal != nil {
		return
	}
	// An ESM main reaches runtimes that honor "exports" only by luck
	esm := format.Expected(l.fs, fp) == domain.FormatESM
	if data, err := l.fs.ReadFile(fp); err == nil {
		if actual := format.Classify(data); actual.Explicit() {
			esm = actual == domain.FormatESM
		}
	}
	if esm {
		l.suggest(domain.CodeHasESMMainButNoExports, p, nil)
	}
}

// checkImplicitIndex covers packages that rely on the ./index.js
// default entry point instead of declaring one
func (l *Linter) checkImplicitIndex() {
	if l.exportsVal != nil {
		return
	}
	if mod, _ := l.pkg.PublishedField("module"); mod != nil {
		return
	}
	const index = "./index.js"
	data, err := l.fs.ReadFile(index)
	if err != nil {
		return
	}
	actual := format.Classify(data)
	if !actual.Explicit() {
		return
	}
	expected := format.Expected(l.fs, index)
	if actual != expected {
		l.warn(domain.CodeImplicitIndexJSInvalidFormat, nil, map[string]any{
			"actualFormat": actual,
			"expectFormat": expected,
		})
	}
}

func (l *Linter) checkModule(_ context.Context) {
	v, p := l.pkg.PublishedField("module")
	if v == nil {
		return
	}
	if !v.IsString() {
		l.invalidValueType(p, v, "string")
		return
	}
	l.checkFile(vfs.Normalize(v.Str), fileCheckOptions{
		diagPath:    p,
		requireESM:  domain.CodeModuleShouldBeESM,
		esmSeverity: domain.SeverityWarning,
	})
	if l.exportsVal == nil {
		l.suggest(domain.CodeHasModuleButNoExports, p, nil)
	}
}

func (l *Linter) checkType(_ context.Context) {
	v := l.pkg.Field("type")
	if v == nil {
		l.suggest(domain.CodeUseType, domain.Path{"type"}, nil)
		return
	}
	if !v.IsString() || (v.Str != "module" && v.Str != "commonjs") {
		l.invalidValueType(domain.Path{"type"}, v, `"module" | "commonjs"`)
	}
}

func (l *Linter) checkJSNext(_ context.Context) {
	for _, field := range []string{"jsnext:main", "jsnext"} {
		if l.pkg.Field(field) != nil {
			l.suggest(domain.CodeDeprecatedFieldJSNext, domain.Path{field}, nil)
		}
	}
}

func (l *Linter) checkBrowser(_ context.Context) {
	v, p := l.pkg.PublishedField("browser")
	if v == nil {
		return
	}
	switch {
	case v.IsString():
		if l.exportsVal != nil {
			l.suggest(domain.CodeUseExportsBrowser, p, nil)
		}
		// Browser files target an environment the format inference
		// does not model, so only existence is verified
		l.checkFile(vfs.Normalize(v.Str), fileCheckOptions{diagPath: p, skipFormat: true})
	case v.IsObject():
		if l.exportsVal != nil {
			l.suggest(domain.CodeUseExportsOrImportsBrowser, p, nil)
		}
		for _, m := range v.Members {
			switch {
			case m.Value.IsString() && vfs.IsRelative(m.Value.Str):
				l.checkFile(vfs.Normalize(m.Value.Str), fileCheckOptions{diagPath: p.Child(m.Key), skipFormat: true})
			case m.Value != nil && m.Value.Kind == manifest.KindBool:
				// `false` disables a module for browsers, nothing to resolve
			}
		}
	default:
		l.invalidValueType(p, v, "string | object")
	}
}

func (l *Linter) checkBin(_ context.Context) {
	v, p := l.pkg.PublishedField("bin")
	if v == nil {
		return
	}
	switch {
	case v.IsString():
		l.checkBinTarget(v.Str, p)
	case v.IsObject():
		for _, m := range v.Members {
			if m.Value.IsString() {
				l.checkBinTarget(m.Value.Str, p.Child(m.Key))
			} else {
				l.invalidValueType(p.Child(m.Key), m.Value, "string")
			}
		}
	default:
		l.invalidValueType(p, v, "string | object")
	}
}

func (l *Linter) checkBinTarget(value string, p domain.Path) {
	fp := vfs.Normalize(value)
	if data, err := l.fs.ReadFile(fp); err == nil {
		actual := format.Classify(data)
		expected := format.Expected(l.fs, fp)
		if actual == domain.FormatESM && expected == domain.FormatCJS {
			// The launcher resolves the script as CommonJS, so module
			// syntax makes the command fail at startup
			l.error(domain.CodeBinFileNotExecutableFormat, p, map[string]any{
				"filePath":     fp,
				"actualFormat": actual,
				"expectFormat": expected,
			})
			return
		}
	}
	l.checkFile(fp, fileCheckOptions{diagPath: p})
}

var (
	repoShorthandRE = regexp.MustCompile(`^(github|gitlab|bitbucket|gist):[\w.-]+(/[\w.-]+)?$|^[\w.-]+/[\w.-]+$`)
	repoURLRE       = regexp.MustCompile(`^(git\+)?(https?|git|ssh)://|^git@`)
)

func (l *Linter) checkRepository(_ context.Context) {
	v := l.pkg.Field("repository")
	if v == nil {
		return
	}
	switch {
	case v.IsString():
		if !repoShorthandRE.MatchString(v.Str) && !repoURLRE.MatchString(v.Str) {
			l.suggest(domain.CodeInvalidRepositoryValue, domain.Path{"repository"}, map[string]any{"value": v.Str})
		}
	case v.IsObject():
		url := v.Get("url")
		if !url.IsString() || !repoURLRE.MatchString(url.Str) {
			l.suggest(domain.CodeInvalidRepositoryValue, domain.Path{"repository", "url"}, nil)
		}
	default:
		l.invalidValueType(domain.Path{"repository"}, v, "string | object")
	}
}

func (l *Linter) checkMetadataFields(_ context.Context) {
	if l.pkg.Field("files") == nil {
		l.suggest(domain.CodeUseFiles, domain.Path{"files"}, nil)
	}
	if l.pkg.Field("license") == nil {
		l.suggest(domain.CodeUseLicense, domain.Path{"license"}, nil)
	}
}

func (l *Linter) checkDependencies(_ context.Context) {
	for _, field := range []string{"dependencies", "optionalDependencies"} {
		deps := l.pkg.Field(field)
		if !deps.IsObject() {
			continue
		}
		for _, m := range deps.Members {
			if !m.Value.IsString() {
				continue
			}
			if strings.HasPrefix(m.Value.Str, "file:") || strings.HasPrefix(m.Value.Str, "link:") {
				l.warn(domain.CodeLocalDependency, domain.Path{field, m.Key}, map[string]any{
					"dependency": m.Key,
					"value":      m.Value.Str,
				})
			}
		}
	}
}

func (l *Linter) checkPublishConfig(_ context.Context) {
	pc := l.pkg.Field("publishConfig")
	if !pc.IsObject() {
		return
	}
	if dir := pc.Get("directory"); dir.IsString() && strings.Contains(dir.Str, "*") {
		l.error(domain.CodePublishConfigDirectoryGlob, domain.Path{"publishConfig", "directory"}, map[string]any{"value": dir.Str})
	}
}

func (l *Linter) checkTypesField(_ context.Context) {
	for _, field := range []string{"types", "typings"} {
		v, p := l.pkg.PublishedField(field)
		if v == nil {
			continue
		}
		if !v.IsString() {
			l.invalidValueType(p, v, "string")
			continue
		}
		l.checkFile(vfs.Normalize(v.Str), fileCheckOptions{diagPath: p, skipFormat: true})
	}
}

func (l *Linter) invalidValueType(p domain.Path, v *manifest.Value, expect string) {
	actual := "missing"
	if v != nil {
		actual = v.Kind.String()
	}
	l.error(domain.CodeFieldInvalidValueType, p, map[string]any{
		"actualType":  actual,
		"expectTypes": expect,
	})
}
