package rod

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="contact">
		<label for="full">Full Name</label>
		<input id="full" type="text" name="full_name" />
		<label>Email <input type="email" name="mail" /></label>
		<input id="city" type="text" placeholder="Your city" />
		<input type="hidden" name="csrf" value="x" />
		<button id="submit" type="button" onclick="document.getElementById('result').textContent = 'Sent!'">Send</button>
	</form>
	<div id="result"></div>
</body>
</html>`

	SiblingLabelsHTML = `<!DOCTYPE html>
<html>
<body>
	<form><label>Name</label><input type="text"><label>Email</label><input type="text"></form>
</body>
</html>`
)
