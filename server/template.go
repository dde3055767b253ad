package server

const formTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AES Encryption Tool</title>
<style>
body { background-color: #121212; color: #e0e0e0; font-family: 'Segoe UI', sans-serif; max-width: 720px; margin: 0 auto; padding: 20px; }
h1 { color: #007bff; text-align: center; }
.container { background-color: #1e1e1e; border: 1px solid #333; border-radius: 5px; padding: 10px; margin-bottom: 15px; }
label { color: #b3b3b3; font-size: 14px; }
input[type="text"], select, textarea { background-color: #2a2a2a; color: #fff; border: 1px solid #444; border-radius: 4px; padding: 8px; width: 100%; box-sizing: border-box; margin: 5px 0 10px; }
textarea { height: 100px; }
button { background-color: #007bff; color: #fff; border: none; border-radius: 4px; padding: 8px 16px; margin: 0 10px 10px 0; cursor: pointer; }
button:hover { background-color: #0056b3; }
button.secondary { background-color: #6c757d; }
.error { background-color: #5c1e1e; border-color: #a33; }
.fingerprint { font-family: monospace; color: #9ad; }
</style>
</head>
<body>
<h1>AES Encryption Tool</h1>
{{if .Error}}<div class="container error">{{.Error}}</div>{{end}}
<form method="post" action="/">
<div class="container">
<label for="input"><strong>Input Text</strong></label>
<textarea id="input" name="input">{{.State.Input}}</textarea>
</div>

<div class="container">
<strong>Encryption Key</strong><br>
<label for="key_size">Key Size:</label>
<select id="key_size" name="key_size">
{{range .KeySizes}}<option value="{{.}}"{{if eq . $.State.KeySize}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="key">Secret Key (Base64):</label>
<input type="text" id="key" name="key" value="{{.State.Key}}">
{{if .Fingerprint}}<div class="fingerprint">Fingerprint: {{.Fingerprint}}</div>{{end}}
<button type="submit" name="action" value="generate-key" class="secondary">Generate Key</button>
<label for="passphrase">Passphrase:</label>
<input type="text" id="passphrase" name="passphrase" value="">
<button type="submit" name="action" value="derive-key" class="secondary">Derive Key</button>
</div>

<div class="container">
<strong>Initialization Vector (IV)</strong><br>
<label for="iv">IV (Base64):</label>
<input type="text" id="iv" name="iv" value="{{.State.IV}}">
<button type="submit" name="action" value="generate-iv" class="secondary">Generate IV</button>
</div>

<div class="container">
<strong>Encryption Mode</strong>
{{range .Modes}}<label><input type="radio" name="mode" value="{{.}}"{{if eq . $.State.Mode}} checked{{end}}> {{.}}</label>
{{end}}
<strong>Output Format</strong>
{{range .Formats}}<label><input type="radio" name="format" value="{{.}}"{{if eq . $.State.Format}} checked{{end}}> {{.}}</label>
{{end}}
</div>

<button type="submit" name="action" value="encrypt">Encrypt</button>
<button type="submit" name="action" value="decrypt">Decrypt</button>
<button type="submit" name="action" value="clear" class="secondary">Clear All</button>

<div class="container">
<label for="output"><strong>Output</strong></label>
<textarea id="output" name="output">{{.State.Output}}</textarea>
</div>
</form>
</body>
</html>
`
