// Package dev 提供 SeqLab 的「內部 Dev Panel」HTTP endpoints。
//
// 目的：
//   - 讓數學家 / 後端在開發期快速驗證：指定實驗種類、n/k/weights、seed，
//     直接在瀏覽器跑一次卡方檢定並看結果。
//   - seed 以字串顯示，可複製貼回重跑同一條軌跡（deterministic replay）。
//
// 注意：
//   - 這不是 production API；它偏向 debug / tooling，行為允許更寬鬆。
//   - 實際執行走 /v1/experiment，本套件只負責 UI 與 meta。
package dev

import (
	"embed"
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/seqlab"
	"github.com/zintix-labs/seqlab/server/netsvr"
	"github.com/zintix-labs/seqlab/server/svrcfg"
)

// Register 註冊 Dev Panel 的 routes。
//
// Routes：
//   - GET /dev         ：Dev Panel HTML（內嵌 JS）。
//   - GET /favicon.svg ：favicon。
//   - GET /dev/meta    ：回傳可用的實驗種類與 trials 上限（供前端下拉選單）。
func Register(svr netsvr.NetRouter, cfg *svrcfg.SvrCfg) {
	svr.Get("/dev", devPage)
	svr.Get("/favicon.svg", favicon)
	svr.Get("/dev/meta", devMeta(cfg))
}

const devPageHTML = `<!doctype html>
<html lang="zh-Hant">
<head>
  <meta charset="utf-8" />
  <link rel="icon" type="image/svg+xml" href="/favicon.svg" />
  <title>SeqLab Dev</title>
  <style>
    body { font-family: -apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif; background:#0f172a; color:#e2e8f0; margin:0; }
    .wrap { max-width: 860px; margin: 24px auto; padding: 16px 20px; background:#111827; border:1px solid #1f2937; border-radius:12px; box-shadow:0 12px 50px rgba(0,0,0,0.35); }
    h1 { margin: 0 0 16px; font-size: 22px; letter-spacing: 0.3px; }
    .grid { display:grid; grid-template-columns: repeat(auto-fit, minmax(150px,1fr)); gap:12px; margin-bottom:12px; }
    label { display:flex; flex-direction:column; gap:6px; font-size: 13px; color:#cbd5e1; }
    input, select { background:#0b1224; color:#e2e8f0; border:1px solid #1f2738; border-radius:8px; padding:10px 12px; font-size:14px; }
    input:focus, select:focus { outline:1px solid #38bdf8; border-color:#38bdf8; }
    .actions { display:flex; gap:10px; justify-content:flex-end; margin: 8px 0 14px; }
    button { cursor:pointer; border:none; border-radius:10px; padding:10px 14px; font-weight:600; }
    #btn-run { background:#38bdf8; color:#0b1224; }
    #btn-clear { background:#1f2937; color:#e2e8f0; border:1px solid #334155; }
    button:disabled { opacity:0.6; cursor:not-allowed; }
    #verdict { font-weight:700; margin-bottom:8px; }
    #verdict.pass { color:#22c55e; }
    #verdict.fail { color:#f87171; }
    #out { background:#0b1224; border:1px solid #1f2738; border-radius:12px; padding:14px; min-height:160px; overflow:auto; font-family: ui-monospace, Menlo, Consolas, monospace; white-space:pre-wrap; }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>SeqLab Dev Panel</h1>
    <div class="grid">
      <label>Kind
        <select id="kind"></select>
      </label>
      <label>n
        <input id="n" type="number" min="1" value="6" />
      </label>
      <label>k
        <input id="k" type="number" min="0" value="0" />
      </label>
      <label>Weights (csv)
        <input id="weights" type="text" placeholder="1,1,2" />
      </label>
      <label>Trials
        <input id="trials" type="number" min="1" value="60000" />
      </label>
      <label>Seed (int64)
        <input id="seed" type="text" inputmode="numeric" placeholder="Empty = auto" />
      </label>
      <label>Alpha
        <input id="alpha" type="text" value="0.001" />
      </label>
    </div>
    <div class="actions">
      <button id="btn-run">Run</button>
      <button id="btn-clear">Clear</button>
    </div>
    <div id="verdict"></div>
    <pre id="out"></pre>
  </div>
<script>
const kindSel = document.getElementById('kind');
const out = document.getElementById('out');
const verdict = document.getElementById('verdict');
const btnRun = document.getElementById('btn-run');
let maxTrials = 0;

async function loadMeta() {
  try {
    const res = await fetch('/dev/meta');
    if (!res.ok) throw new Error(await res.text());
    const data = await res.json();
    maxTrials = data.max_trials || 0;
    kindSel.innerHTML = '';
    (data.kinds || []).forEach((k) => {
      const opt = document.createElement('option');
      opt.value = k;
      opt.textContent = k;
      kindSel.appendChild(opt);
    });
  } catch (err) {
    out.textContent = 'Failed to load meta: ' + err.message;
  }
}

async function run() {
  btnRun.disabled = true;
  verdict.textContent = '';
  out.textContent = 'Running…';
  const payload = {
    name: 'dev',
    kind: kindSel.value,
    n: Number(document.getElementById('n').value) || 0,
    trials: Number(document.getElementById('trials').value) || 0,
  };
  if (maxTrials > 0 && payload.trials > maxTrials) payload.trials = maxTrials;
  const k = Number(document.getElementById('k').value);
  if (k > 0) payload.k = k;
  const ws = document.getElementById('weights').value.trim();
  if (ws !== '') payload.weights = ws.split(',').map(Number);
  const seed = document.getElementById('seed').value.trim();
  if (seed !== '') payload.seed = Number(seed);
  const alpha = Number(document.getElementById('alpha').value);
  if (alpha > 0) payload.alpha = alpha;
  try {
    const res = await fetch('/v1/experiment', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(payload),
    });
    if (!res.ok) throw new Error(await res.text());
    const data = await res.json();
    const rep = data.report || {};
    verdict.textContent = rep.Pass ? 'PASS (p=' + rep.PValue + ')' : 'FAIL (p=' + rep.PValue + ')';
    verdict.className = rep.Pass ? 'pass' : 'fail';
    out.textContent = JSON.stringify(data, null, 2);
  } catch (err) {
    verdict.textContent = '';
    out.textContent = 'Request failed: ' + err.message;
  } finally {
    btnRun.disabled = false;
  }
}

document.getElementById('btn-run').addEventListener('click', run);
document.getElementById('btn-clear').addEventListener('click', () => {
  verdict.textContent = '';
  out.textContent = '';
});
loadMeta();
</script>
</body>
</html>`

// devPage 回傳內嵌 HTML（single page）。這裡不做 templating，降低 dev tool 維護成本。
func devPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(devPageHTML))
}

func favicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(faviconSVG))
}

// devMeta 回傳實驗種類與 trials 上限（JSON）。
func devMeta(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	type meta struct {
		Kinds     []string `json:"kinds"`
		MaxTrials int      `json:"max_trials"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		m := meta{Kinds: seqlab.Kinds(), MaxTrials: cfg.MaxTrials}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m)
	}
}

//go:embed favicon.svg
var faviconSVG string

// keep embed imported even if only used for directives
var _ embed.FS
