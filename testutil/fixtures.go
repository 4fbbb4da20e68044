package testutil

import "fmt"

// IndexHTML is a conforming primary page.
const IndexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Harbor Studio</title>
  <meta name="description" content="Harbor Studio builds small websites">
  <link rel="icon" href="favicon.ico">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/normalize/8.0.1/normalize.min.css">
  <link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter&display=swap">
  <link rel="stylesheet" href="styles/main.css">
</head>
<body>
  <svg class="sprite" aria-hidden="true">
    <symbol id="icon-star" viewBox="0 0 10 10"><path d="M0 0h10v10H0z"></path></symbol>
  </svg>
  <header>
    <nav>
      <ul>
        <li><a href="about/">About</a></li>
        <li><a href="contact/">Contact</a></li>
      </ul>
    </nav>
  </header>
  <section class="hero">
    <h1>Harbor Studio</h1>
    <p>Small sites, carefully made.</p>
  </section>
  <picture>
    <source media="(min-width: 1200px)" srcset="images/banner-large.jpg">
    <source media="(min-width: 800px)" srcset="images/banner-medium.jpg">
    <source media="(min-width: 400px)" srcset="images/banner-small.jpg">
    <img src="images/hero-banner.png" alt="Harbor at dawn" width="600" height="200">
  </picture>
  <main>
    <article class="panel">
      <h2>Design</h2>
      <div class="left"><img src="images/design.png" alt="Sketch" width="40" height="30"></div>
      <p>We sketch before we build.</p>
      <a class="button" href="about/">Our process</a>
    </article>
    <article class="panel">
      <h2>Build</h2>
      <div class="left"><p>Hand-written markup.</p></div>
      <p>Every page is tested.</p>
      <a class="button" href="contact/">Start a project</a>
    </article>
    <section class="cards">
      <div class="card">Plan</div>
      <div class="card">Draft</div>
      <div class="card">Review</div>
      <div class="card">Launch</div>
    </section>
  </main>
  <aside>
    <p>Now booking projects for spring.</p>
  </aside>
  <footer>
    <p>Harbor Studio</p>
  </footer>
</body>
</html>
`

// AboutHTML is a conforming nested page using srcset and sizes.
const AboutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>About | Harbor Studio</title>
  <meta name="description" content="About Harbor Studio">
  <link rel="icon" href="../favicon.ico">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/normalize/8.0.1/normalize.min.css">
  <link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter&display=swap">
  <link rel="stylesheet" href="../styles/main.css">
</head>
<body>
  <header>
    <nav>
      <ul>
        <li><a href="../">Home</a></li>
        <li><a href="../contact/">Contact</a></li>
      </ul>
    </nav>
  </header>
  <main>
    <h1>About us</h1>
    <img src="../images/team-400.png"
         srcset="../images/team-400.png 400w, ../images/team-800.png 800w, ../images/team-1200.png 1200w"
         sizes="(min-width: 800px) 50vw, 100vw"
         alt="The team" width="400" height="300">
    <p>Two people and a harbor.</p>
  </main>
</body>
</html>
`

// ContactHTML is a conforming nested page with an SVG image and a form.
const ContactHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Contact | Harbor Studio</title>
  <meta name="description" content="Contact Harbor Studio">
  <link rel="icon" href="../favicon.ico">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/normalize/8.0.1/normalize.min.css">
  <link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter&display=swap">
  <link rel="stylesheet" href="../styles/main.css">
</head>
<body>
  <header>
    <nav>
      <ul>
        <li><a href="../">Home</a></li>
        <li><a href="../about/">About</a></li>
      </ul>
    </nav>
  </header>
  <main>
    <h1>Contact</h1>
    <img src="../images/map.svg" alt="Map" width="120" height="80">
    <form action="#" method="post">
      <label for="name">Name</label>
      <input type="text" id="name" name="name">
      <label for="email">Email</label>
      <input type="email" id="email" name="email" required>
      <fieldset>
        <legend>Interests</legend>
        <input type="checkbox" id="interest-web" name="interest" value="web">
        <label for="interest-web">Web</label>
        <input type="checkbox" id="interest-print" name="interest" value="print">
        <label for="interest-print">Print</label>
      </fieldset>
      <fieldset>
        <legend>Budget</legend>
        <input type="radio" id="budget-low" name="budget" value="low">
        <label for="budget-low">Low</label>
        <input type="radio" id="budget-high" name="budget" value="high">
        <label for="budget-high">High</label>
      </fieldset>
      <label for="message">Message</label>
      <textarea id="message" name="message" placeholder="Say hello"></textarea>
      <button type="submit">Send</button>
    </form>
  </main>
</body>
</html>
`

// MainCSS is a conforming project stylesheet.
const MainCSS = `*,
*::before,
*::after {
  box-sizing: border-box;
}

:root {
  --brand: #0a58ca;
  --text: #222222;
}

body {
  font-family: "Inter", sans-serif;
  color: var(--text);
  display: flex;
  flex-direction: column;
}

a {
  color: var(--brand);
  text-decoration: none;
}

a[href]:hover {
  text-decoration: underline;
}

main {
  max-width: 60rem;
  margin: 0 auto;
}

.hero h1 {
  font-size: clamp(2rem, 5vw, 4rem);
}

.button {
  display: inline-block;
  padding: 0.5rem 1rem;
}

.button:hover {
  background-color: var(--brand);
  color: white;
}

footer {
  background-color: #eeeeee;
  padding: 1rem;
}

@media (min-width: 600px) {
  .cards {
    display: grid;
    grid-template-columns: 1fr 1fr;
  }
}

@media (min-width: 900px) {
  .cards {
    grid-template-columns: repeat(4, 1fr);
  }
}
`

func svgDoc(width, height int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
  <rect width="%d" height="%d" fill="#0a58ca"/>
</svg>
`, width, height, width, height, width, height)
}
