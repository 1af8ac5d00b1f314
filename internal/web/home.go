package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Home renders the converter page with both modes, showing the active one.
func Home(page PageState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		st := page.State
		textMode := page.TextMode()
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Base64 Converter</title>
    <link rel="stylesheet" href="`+assetPath("/static/app.css")+`"/>
  </head>
  <body data-max-image-bytes="`+strconv.FormatInt(page.MaxImageBytes, 10)+`" data-require-prefix="`+strconv.FormatBool(page.RequireImagePrefix)+`">
    <main class="shell">
      <header class="hero">
        <h1>Base64 Converter</h1>
        <p>Encode and decode text or images. Everything stays in your session.</p>
      </header>

      <nav class="tabs">
        <button type="button" class="tab`+activeIf(textMode)+`" data-mode="text">Text</button>
        <button type="button" class="tab`+activeIf(!textMode)+`" data-mode="image">Image</button>
      </nav>

      <section id="textMode" class="panel"`+hiddenUnless(textMode)+`>
        <label class="toggle">
          <input type="checkbox" id="autoDetect"`+checkedIf(st.AutoDetect)+`/>
          Auto-detect
        </label>
        <div class="columns">
          <div class="column">
            <label for="textInput">Input <span id="inputChars" class="count">`+itoa(st.InputChars)+`</span></label>
            <textarea id="textInput" rows="10" placeholder="Type text or paste Base64">`+templ.EscapeString(st.Input)+`</textarea>
          </div>
          <div class="column">
            <label for="textOutput">Output <span id="outputChars" class="count">`+itoa(st.OutputChars)+`</span></label>
            <textarea id="textOutput" rows="10" readonly class="`+outputClass(st.OutputFailed)+`">`+templ.EscapeString(st.Output)+`</textarea>
          </div>
        </div>
        <div class="actions">
          <button type="button" id="encodeBtn" class="primary">Encode</button>
          <button type="button" id="decodeBtn" class="secondary">Decode</button>
          <button type="button" id="copyOutputBtn" class="secondary copy-label">`+templ.EscapeString(st.CopyLabel)+`</button>
          <button type="button" id="clearTextBtn" class="ghost">Clear</button>
        </div>
      </section>

      <section id="imageMode" class="panel"`+hiddenUnless(!textMode)+`>
        <div class="columns">
          <div class="column">
            <h2>Image to Base64</h2>
            <input type="file" id="imageFile" accept="image/*"/>
            <p id="fileName" class="muted">`+templ.EscapeString(st.FileName)+`</p>
            <textarea id="base64Output" rows="8" readonly>`+templ.EscapeString(st.Base64Output)+`</textarea>
            <button type="button" id="copyImageBtn" class="secondary copy-label">`+templ.EscapeString(st.CopyLabel)+`</button>
          </div>
          <div class="column">
            <h2>Base64 to Image</h2>
            <textarea id="base64Input" rows="8" placeholder="Paste Base64 or a data:image/ URL">`+templ.EscapeString(st.Base64Input)+`</textarea>
            <button type="button" id="decodeImageBtn" class="primary">Show image</button>
          </div>
        </div>
        <figure id="previewFrame" class="preview"`+hiddenUnless(st.Preview != "")+`>
          <img id="preview" alt="Image preview" src="`+templ.EscapeString(st.Preview)+`"/>
        </figure>
        <div class="actions">
          <button type="button" id="clearImageBtn" class="ghost">Clear</button>
        </div>
      </section>
`)
		if page.UsageEnabled {
			_, _ = io.WriteString(w, `
      <footer class="usage"><a href="/api/usage">Usage stats</a></footer>
`)
		}
		_, _ = io.WriteString(w, `    </main>
`)
		if err := templ.JSONScript("initialState", st).Render(ctx, w); err != nil {
			return err
		}
		_, _ = io.WriteString(w, `
    <script src="`+assetPath("/static/app.js")+`"></script>
  </body>
</html>
`)
		return nil
	})
}

func outputClass(failed bool) string {
	if failed {
		return "output error"
	}
	return "output"
}
