package ocr

// CountPrompt is sent with every image. The reply is expected to be a bare
// JSON object keyed by denomination.
const CountPrompt = `釣銭機の画面画像から各金種の枚数を読み取り、JSONで出力してください。
画像には以下のような金種が表示されています：
- 紙幣: 10000円、5000円、1000円
- 硬貨: 500円、100円、50円、10円、5円、1円

出力形式: {"10000": int, "5000": int, "1000": int, "500": int, "100": int, "50": int, "10": int, "5": int, "1": int}
必ず数値のみを返してください。金種が表示されていない場合は0を返してください。
JSONのみを出力し、マークダウン記法や説明文は不要です。`
